package consts

// Program identity.
const (
	ProgramName    = "harvester"
	ProgramDisplay = "Harvester"
)

// Child executables.
const (
	YTDLP  = "yt-dlp"
	FFMPEG = "ffmpeg"
)

// Remediation hints surfaced with spawn errors.
const (
	SpawnRemediation = "install yt-dlp or point --ytdlp-path at the executable (run 'harvester tools' to check)"
)
