package config

import "time"

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Heart Bloom - Click to bloom, O: open music, Space: Play/Pause, Esc/Q: Quit"

	// Frame timing
	MaxFrameStep  = 0.033
	TricklePeriod = 2500 * time.Millisecond

	// Spawn counts
	BloomCount   = 420
	TrickleCount = 120
	ClickCount   = 300
	BeatCount    = 60

	// Bloom geometry, relative to the surface size
	BloomCenterY  = 0.36
	RingCenterY   = 0.6
	HeartScaleDiv = 55.0
	GlowRadiusDiv = 4.2
	GlowInner     = 10.0

	// Particle physics
	Gravity      = 0.4
	FrameRate    = 60.0
	FadeExponent = 1.8
	GrowOnFade   = 0.4

	// Particle randomisation ranges, [min, max)
	LifeMin  = 1.2
	LifeMax  = 2.6
	SizeMin  = 1.2
	SizeMax  = 3.6
	VXMin    = -0.6
	VXMax    = 0.6
	VYMin    = -1.5
	VYMax    = -0.2
	JitterR  = 4.0
	JitterTh = 0.2

	// Sparkles
	SparkleCount    = 5
	SparkleAlphaMin = 0.02
	SparkleAlphaMax = 0.05
	SparkleMaxSize  = 1.6

	// Rings
	RingAlpha       = 0.9
	RingAccentEvery = 5

	// Audio level smoothing and beat detection
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	BeatOn          = 0.35
	BeatOff         = 0.25
	BeatCooldown    = 400 * time.Millisecond
)
