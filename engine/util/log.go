package util

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogCamera | LogPath | LogActor | LogScene | LogAsset

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogCamera LogCategory = 1 << iota
	LogPath
	LogSelect
	LogActor
	LogScene
	LogInput
	LogAsset
	LogLoop
)

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	println(txt)
}

func LogCameraInfo(txt string) {
	log(LogCamera, LogLevelInfo, txt)
}

func LogCameraDebug(txt string) {
	log(LogCamera, LogLevelDebug, txt)
}

func LogPathInfo(txt string) {
	log(LogPath, LogLevelInfo, txt)
}

func LogPathDebug(txt string) {
	log(LogPath, LogLevelDebug, txt)
}

func LogPathWarning(txt string) {
	log(LogPath, LogLevelWarning, txt)
}

func LogSelectDebug(txt string) {
	log(LogSelect, LogLevelDebug, txt)
}

func LogSelectInfo(txt string) {
	log(LogSelect, LogLevelInfo, txt)
}

func LogActorInfo(txt string) {
	log(LogActor, LogLevelInfo, txt)
}

func LogSceneInfo(txt string) {
	log(LogScene, LogLevelInfo, txt)
}

func LogSceneError(txt string) {
	log(LogScene, LogLevelError, txt)
}

func LogInputDebug(txt string) {
	log(LogInput, LogLevelDebug, txt)
}

func LogAssetInfo(txt string) {
	log(LogAsset, LogLevelInfo, txt)
}

func LogAssetError(txt string) {
	log(LogAsset, LogLevelError, txt)
}

func LogLoopDebug(txt string) {
	log(LogLoop, LogLevelDebug, txt)
}

func LogLoopWarning(txt string) {
	log(LogLoop, LogLevelWarning, txt)
}
