package config

type CliConfig struct {
	HubFile string `default:"/etc/climatemaster/hub.json"`

	Broker         string `default:"tcp://127.0.0.1:1883"`
	TopicPrefix    string `default:"home"`
	EmbeddedBroker bool
	BrokerListen   string `default:":1883"`

	Interval int `default:"60"` // seconds between decision cycles

	HistoryAddr     string
	HistoryDatabase string `default:"climate"`
	HistoryUsername string `default:"default"`
	HistoryPassword string

	BoilerAddress  string // modbus tcp host:port, empty disables the poller
	BoilerInterval int    `default:"30"`

	HeatMeterDevice   string // serial device path, empty disables the poller
	HeatMeterAddress  int    `default:"1"`
	HeatMeterInterval int    `default:"300"`

	LogLevel string `default:"info"`
}
