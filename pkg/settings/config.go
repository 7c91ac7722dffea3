package settings

// Config is the root configuration for components of this library.
type Config struct {
	Server        Server        `mapstructure:"server"`
	Dispatcher    Dispatcher    `mapstructure:"dispatcher"`
	Kafka         Kafka         `mapstructure:"kafka"`
	WideColumn    WideColumn    `mapstructure:"wide_column"`
	MongoDB       MongoDB       `mapstructure:"mongodb"`
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	Redis         Redis         `mapstructure:"redis"`
	Logger        Logger        `mapstructure:"logger"`
	SnowflakeNode SnowflakeNode `mapstructure:"snowflake_node"`
}

// Server is the configuration for the HTTP ingest server
type Server struct {
	Mode string `mapstructure:"mode"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Dispatcher is the configuration for the micro-batching dispatcher.
// BatchMaxSize zero falls back to the dispatcher default; set DrainAll to
// form unbounded batches that take everything currently queued.
type Dispatcher struct {
	BatchMaxSize int    `mapstructure:"batch_max_size"`
	DrainAll     bool   `mapstructure:"drain_all"`
	AckStrategy  string `mapstructure:"ack_strategy"` // "ignore" | "on_receive"
}

// Kafka is the configuration for the Kafka record source
type Kafka struct {
	Brokers           []string `mapstructure:"brokers"`
	Group             string   `mapstructure:"group"`
	Topics            []string `mapstructure:"topics"`
	InitialOffset     string   `mapstructure:"initial_offset"`      // "newest" | "oldest"
	Timeout           int      `mapstructure:"timeout"`             // Seconds
	MaxRetries        int      `mapstructure:"max_retries"`         // Number of retries
	RetryBackoff      int      `mapstructure:"retry_backoff"`       // Milliseconds
	MaxProcessingTime int      `mapstructure:"max_processing_time"` // Milliseconds
}

// WideColumn is the configuration for Wide Column databases (Cassandra/ScyllaDB)
type WideColumn struct {
	Hosts    []string `mapstructure:"hosts"`
	Keyspace string   `mapstructure:"keyspace"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	Port     int      `mapstructure:"port"`
	Timeout  int      `mapstructure:"timeout"`
	Retries  int      `mapstructure:"retries"`
}

// MongoDB is the configuration for MongoDB
type MongoDB struct {
	Host            string `mapstructure:"host"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxPoolSize     uint64 `mapstructure:"max_pool_size"`
	MinPoolSize     uint64 `mapstructure:"min_pool_size"`
	MaxConnIdleTime uint64 `mapstructure:"max_conn_idle_time"`
	Port            int    `mapstructure:"port"`
	Timeout         int    `mapstructure:"timeout"`
}

// Elasticsearch is the configuration for Elasticsearch
type Elasticsearch struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	Database        int    `mapstructure:"database"`
	PoolSize        int    `mapstructure:"pool_size"`
	MinIdleConns    int    `mapstructure:"min_idle_conns"`
	PoolTimeout     int    `mapstructure:"pool_timeout"`
	DialTimeout     int    `mapstructure:"dial_timeout"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff"` // Milliseconds
	MinRetryBackoff int    `mapstructure:"min_retry_backoff"` // Milliseconds
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

type Snowflake struct {
	Epoch     int64 `mapstructure:"epoch"`
	Node      uint8 `mapstructure:"node"`
	Step      uint8 `mapstructure:"step"`
	TotalBits uint8 `mapstructure:"total_bits"`
}

type SnowflakeNode struct {
	Config   Snowflake
	WorkerID int64 `mapstructure:"worker_id"`
}
