// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

// MetaData accumulates at most one video and one audio descriptor per
// conversion session. The zero value is ready to use. It is owned by the
// session feeding it lines; concurrent extraction into the same
// accumulator must be serialized by that owner.
type MetaData struct {
	Video *VideoData
	Audio *AudioData
}

// VideoData describes the first announced video stream.
type VideoData struct {
	Format     string
	ColorModel string
	FrameSize  string
	Fps        float64
	// BitRateKbs is nil when the announcement carries no parsable
	// bitrate. 注意: 与 AudioData 的 0 缺省不同,对外行为有差别,不要统一。
	BitRateKbs *float64
}

// AudioData describes the first announced audio stream.
type AudioData struct {
	Format        string
	SampleRate    string
	ChannelLayout string
	// BitRateKbs falls back to 0 when absent or unparsable.
	BitRateKbs int64
}

// setVideoIfAbsent keeps the first announced video stream of a session
// and ignores every later one. The first-stream-wins policy lives here
// and nowhere else.
func (m *MetaData) setVideoIfAbsent(v *VideoData) {
	if m.Video == nil {
		m.Video = v
	}
}

func (m *MetaData) setAudioIfAbsent(a *AudioData) {
	if m.Audio == nil {
		m.Audio = a
	}
}

// ExtractVideoMeta reads one stderr line as a video stream announcement
// and, when the accumulator holds no video descriptor yet, fills one in.
// A line without the announcement anchor is simply not applicable and
// leaves the accumulator untouched. Sub-fields are best effort: a failed
// sub-match leaves its field empty rather than rejecting the stream.
func ExtractVideoMeta(line string, meta *MetaData) bool {
	m := Pattern(MetaVideo).FindStringSubmatch(line)
	if m == nil {
		return false
	}
	tail := m[1]

	var format, colorModel, frameSize string
	if sub := Pattern(VideoFormatColorSize).FindStringSubmatch(tail); sub != nil {
		format, colorModel, frameSize = sub[1], sub[2], sub[3]
	}

	fps := 0.0
	if sub := Pattern(VideoFps).FindStringSubmatch(tail); sub != nil {
		if f := parseFloat(sub[1]); f != nil {
			fps = *f
		}
	}

	var bitrate *float64
	if sub := Pattern(BitRate).FindStringSubmatch(tail); sub != nil {
		bitrate = parseFloat(sub[1])
	}

	meta.setVideoIfAbsent(&VideoData{
		Format:     format,
		ColorModel: colorModel,
		FrameSize:  frameSize,
		Fps:        fps,
		BitRateKbs: bitrate,
	})
	return true
}

// ExtractAudioMeta is the audio twin of ExtractVideoMeta. The bitrate
// falls back to 0 instead of nil, mirroring what callers have always
// been handed for audio streams.
func ExtractAudioMeta(line string, meta *MetaData) bool {
	m := Pattern(MetaAudio).FindStringSubmatch(line)
	if m == nil {
		return false
	}
	tail := m[1]

	var format, sampleRate, channelLayout string
	if sub := Pattern(AudioFormatHzChannel).FindStringSubmatch(tail); sub != nil {
		format, sampleRate, channelLayout = sub[1], sub[2], sub[3]
	}

	var bitrate int64
	if sub := Pattern(BitRate).FindStringSubmatch(tail); sub != nil {
		if n := parseInt(sub[1]); n != nil {
			bitrate = *n
		}
	}

	meta.setAudioIfAbsent(&AudioData{
		Format:        format,
		SampleRate:    sampleRate,
		ChannelLayout: channelLayout,
		BitRateKbs:    bitrate,
	})
	return true
}
