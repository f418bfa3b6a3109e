package models

type Config struct {
	Debug    bool   `yaml:"debug" envconfig:"BEACON_DEBUG"`
	LogLevel string `yaml:"logLevel" envconfig:"BEACON_LOG_LEVEL"`

	Api struct {
		Port                string `yaml:"port" envconfig:"BEACON_API_INTERNAL_PORT"`
		Url                 string `yaml:"url" envconfig:"BEACON_API_URL"`
		QueryTimeoutSeconds int    `yaml:"queryTimeoutSeconds" envconfig:"BEACON_API_QUERY_TIMEOUT_SECONDS"`
	} `yaml:"api"`

	Beacon struct {
		Id                       string `yaml:"id" envconfig:"BEACON_ID"`
		Name                     string `yaml:"name" envconfig:"BEACON_NAME"`
		Description              string `yaml:"description" envconfig:"BEACON_DESCRIPTION"`
		Version                  string `yaml:"version" envconfig:"BEACON_VERSION"`
		WelcomeUrl               string `yaml:"welcomeUrl" envconfig:"BEACON_WELCOME_URL"`
		AlternativeUrl           string `yaml:"alternativeUrl" envconfig:"BEACON_ALTERNATIVE_URL"`
		ExistsPolicy             string `yaml:"existsPolicy" envconfig:"BEACON_EXISTS_POLICY"`
		DescriptorRefreshMinutes int    `yaml:"descriptorRefreshMinutes" envconfig:"BEACON_DESCRIPTOR_REFRESH_MINUTES"`
	} `yaml:"beacon"`

	Organization struct {
		Id          string `yaml:"id" envconfig:"BEACON_ORG_ID"`
		Name        string `yaml:"name" envconfig:"BEACON_ORG_NAME"`
		Description string `yaml:"description" envconfig:"BEACON_ORG_DESCRIPTION"`
		Address     string `yaml:"address" envconfig:"BEACON_ORG_ADDRESS"`
		WelcomeUrl  string `yaml:"welcomeUrl" envconfig:"BEACON_ORG_WELCOME_URL"`
		ContactUrl  string `yaml:"contactUrl" envconfig:"BEACON_ORG_CONTACT_URL"`
		LogoUrl     string `yaml:"logoUrl" envconfig:"BEACON_ORG_LOGO_URL"`
	} `yaml:"organization"`

	Store struct {
		Backend   string `yaml:"backend" envconfig:"BEACON_STORE_BACKEND"`
		DatasetId string `yaml:"datasetId" envconfig:"BEACON_STORE_DATASET_ID"`
	} `yaml:"store"`

	// upstream GA4GH reference server (formerly the [refServer] section)
	Ga4gh struct {
		Url        string `yaml:"url" envconfig:"BEACON_GA4GH_URL"`
		PageSize   int    `yaml:"pageSize" envconfig:"BEACON_GA4GH_PAGE_SIZE"`
		MaxRetries int    `yaml:"maxRetries" envconfig:"BEACON_GA4GH_MAX_RETRIES"`
	} `yaml:"ga4gh"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"BEACON_ES_URL"`
		Username string `yaml:"username" envconfig:"BEACON_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"BEACON_ES_PASSWORD"`
		Index    string `yaml:"index" envconfig:"BEACON_ES_INDEX"`
		PageSize int    `yaml:"pageSize" envconfig:"BEACON_ES_PAGE_SIZE"`
	} `yaml:"elasticsearch"`
}
