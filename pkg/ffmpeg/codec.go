package ffmpeg

// Preset bundles combine common option combinations.
//
// Every published video gets the same playback-compatibility profile: even
// pixel dimensions, 4:2:0 chroma, H.264 constrained baseline at level 3.1,
// AAC audio at 160k. The only thing that varies is which encoder produced it.

// PresetTargetProfile returns the options shared by both encode paths.
func PresetTargetProfile() []Option {
	return []Option{
		Filter("scale=trunc(iw/2)*2:trunc(ih/2)*2"),
		Filter("format=yuv420p"),
		Profile("baseline"),
		Level("3.1"),
	}
}

// PresetNVENC returns options for GPU h264 encoding via NVENC.
// p4 with hq tuning and CQ 18 lands close to the x264 slow/CRF 18 output.
func PresetNVENC() []Option {
	return append([]Option{
		VideoCodec("h264_nvenc"),
		Preset("p4"),
		Args("-tune", "hq", "-rc", "vbr", "-cq", "18", "-b:v", "0"),
	}, PresetTargetProfile()...)
}

// PresetX264 returns options for CPU h264 encoding with libx264.
func PresetX264() []Option {
	return append([]Option{
		VideoCodec("libx264"),
		Preset("slow"),
		CRF(18),
	}, PresetTargetProfile()...)
}

// PresetAAC returns options for AAC audio encoding at the fixed bitrate.
func PresetAAC() []Option {
	return []Option{
		AudioCodec("aac"),
		AudioBitrate("160k"),
	}
}
