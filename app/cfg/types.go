package cfg

type Cfg struct {
	// Storage configuration
	Store     string
	RedisAddr string
	DataDir   string
	CacheFile string

	// Application configuration
	ConfigFile        string
	ReportsDir        string
	Port              string
	BaseUrl           string
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
