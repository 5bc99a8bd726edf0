package config

const (
	defaultUploadDir        = "~/.local/share/voicegate/uploads"
	defaultLogDir           = "~/.local/share/voicegate/logs"
	defaultAPIBind          = "127.0.0.1:3001"
	defaultMaxUploadMiB     = 256
	defaultFFmpegTimeout    = 120
	defaultFFmpegSampleRate = 44100
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultNotifyTimeout    = 10
	defaultNotifyUploads    = true
	defaultNotifyVerdicts   = true
	defaultNotifyErrors     = true
)

func defaultAllowedExtensions() []string {
	return []string{".wav", ".mp4"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			UploadDir: defaultUploadDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Uploads: Uploads{
			AllowedExtensions: defaultAllowedExtensions(),
			MaxUploadMiB:      defaultMaxUploadMiB,
		},
		FFmpeg: FFmpeg{
			Binary:         "ffmpeg",
			TimeoutSeconds: defaultFFmpegTimeout,
			SampleRate:     defaultFFmpegSampleRate,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Uploads:        defaultNotifyUploads,
			Verdicts:       defaultNotifyVerdicts,
			Errors:         defaultNotifyErrors,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
