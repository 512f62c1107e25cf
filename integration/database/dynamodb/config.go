package dynamodb

// Config holds the DynamoDB connection settings.
type Config struct {
	TableName       string `env:"TABLE_NAME"`
	Region          string `env:"AWS_REGION" envDefault:"eu-west-2"`
	Local           bool   `env:"IS_LOCAL" envDefault:"false"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// DefaultLocalEndpoint is the DynamoDB Local address used when IS_LOCAL is set.
const DefaultLocalEndpoint = "http://localhost:8090"

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Local {
		return DefaultLocalEndpoint
	}
	return ""
}
