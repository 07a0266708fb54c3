package shared

// Global flag values, set by the root command.
var (
	configFlag     string
	logLevelFlag   string
	logFormatFlag  string
	noMinimizeFlag bool
)

// RegisterFlagPointers returns pointers to the persistent flag variables.
// Called by the root command to register flags.
func RegisterFlagPointers() (config, logLevel, logFormat *string, noMinimize *bool) {
	return &configFlag, &logLevelFlag, &logFormatFlag, &noMinimizeFlag
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return configFlag
}

// SetConfigPathForTest sets the config path for testing purposes.
func SetConfigPathForTest(path string) {
	configFlag = path
}
