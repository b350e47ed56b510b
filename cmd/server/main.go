package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"swearjar/pkg/api"
	"swearjar/pkg/swearjar"
	"swearjar/pkg/wordlist"
)

type Config struct {
	ServiceName  string   `toml:"serviceName"`
	WordListPath string   `toml:"wordListPath"`
	WordListURL  string   `toml:"wordListURL"`
	ExtraWords   []string `toml:"extraWords"`
	ExtraPhrases []string `toml:"extraPhrases"`
	Placeholder  string   `toml:"placeholder"`
	BoundaryMode bool     `toml:"boundaryMode"`
	Specials     bool     `toml:"specials"`
	FoldMarks    bool     `toml:"foldMarks"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`
}

func defaultConfig() Config {
	return Config{
		ServiceName:  "swearjar",
		Placeholder:  string(swearjar.DefaultPlaceholder),
		BoundaryMode: true,
		Specials:     true,
		HTTPAddr:     ":8055",
		LogLevel:     "info",
	}
}

func main() {
	var (
		configPath   string
		wordListPath string
		httpAddr     string
		logLevel     string
		kafkaAddr    string
		kafkaTopic   string
		kafkaBatch   int
	)

	flag.StringVar(&configPath, "servconf", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&wordListPath, "words", "", "Path to JSON or TOML word list, the embedded list is used if empty")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.Parse()

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Fatalf("[server] failed to load config file %s: %v", configPath, err)
	}

	// Override config with flags if set
	if wordListPath != "" {
		cfg.WordListPath = wordListPath
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}

	if !strings.Contains(cfg.HTTPAddr, ":") {
		log.Warn("[server] use ':' before port number, e.g. ':8080'")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	words, err := loadWordList(loadCtx, cfg)
	loadCancel()
	if err != nil {
		log.Fatalf("[server] failed to load word list: %v", err)
	}

	filter, err := newFilter(cfg, words)
	if err != nil {
		log.Fatalf("[server] failed to create filter: %v", err)
	}
	log.Infof("[server] filter ready: %d words, %d phrases", len(filter.Blacklist()), len(filter.Phrases()))

	var kafkaWriter *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kafkaWriter = &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		defer kafkaWriter.Close()
		err := createTopic(kafkaWriter.Addr.String(), kafkaWriter.Topic)
		if err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
	} else {
		log.Warnf("[server] kafka was not configured, logs will not be sent to Kafka")
	}

	api, err := api.New(cfg.ServiceName, filter, kafkaWriter)
	if err != nil {
		log.Fatalf("[server] failed to create API: %v", err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
}

// loadWordList picks the word list source: a remote URL first, then a local
// file, then the embedded default list.
func loadWordList(ctx context.Context, cfg Config) (wordlist.List, error) {
	switch {
	case cfg.WordListURL != "":
		log.Infof("[server] fetching word list from %s", cfg.WordListURL)
		return wordlist.Fetch(ctx, nil, cfg.WordListURL)
	case cfg.WordListPath != "":
		log.Infof("[server] loading word list from %s", cfg.WordListPath)
		return wordlist.Load(cfg.WordListPath)
	default:
		log.Info("[server] using embedded word list")
		return wordlist.Default(), nil
	}
}

func newFilter(cfg Config, words wordlist.List) (*swearjar.Filter, error) {
	opts := []swearjar.Option{
		swearjar.WithWordList(words),
		swearjar.WithExtraWords(cfg.ExtraWords...),
		swearjar.WithExtraPhrases(cfg.ExtraPhrases...),
		swearjar.WithBoundaryMode(cfg.BoundaryMode),
		swearjar.WithSpecials(cfg.Specials),
		swearjar.WithFoldMarks(cfg.FoldMarks),
	}

	if cfg.Placeholder != "" {
		if utf8.RuneCountInString(cfg.Placeholder) != 1 {
			return nil, fmt.Errorf("placeholder must be a single character, got %q", cfg.Placeholder)
		}
		r, _ := utf8.DecodeRuneInString(cfg.Placeholder)
		opts = append(opts, swearjar.WithPlaceholder(r))
	}

	return swearjar.New(opts...)
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
