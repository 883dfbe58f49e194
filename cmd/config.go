package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisAddr         string
	KafkaBrokers      string
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayEnabled   string
	GatewaySessionTTL string
}
