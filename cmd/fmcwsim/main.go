package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rjboer/GoFMCW/internal/logging"
	"github.com/rjboer/GoFMCW/internal/radar"
	"github.com/rjboer/GoFMCW/internal/sim"
	"github.com/rjboer/GoFMCW/internal/telemetry"
)

func main() {
	const configPath = "config.json"

	persistentCfg, err := loadOrCreateConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv, persistentCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse config: %v\n", err)
		os.Exit(1)
	}
	if err := saveConfig(configPath, persistentFromCLI(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "save config: %v\n", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(level, os.Stderr, cfg.logJSON)
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}

func run(cfg cliConfig, logger logging.Logger) error {
	radarCfg, err := radar.NewConfig(cfg.startFreq, cfg.bandwidth, cfg.pulseTime, cfg.sampleRate)
	if err != nil {
		return err
	}

	scen, err := loadScenario(cfg.scenarioPath)
	if err != nil {
		return err
	}
	pattern, err := scen.pattern()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporters := telemetry.MultiReporter{telemetry.NewStdoutReporter(logger)}
	var hub *telemetry.Hub
	if cfg.webAddr != "" {
		hub = telemetry.NewHub(cfg.historyLimit)
		reporters = append(reporters, hub)
		go func() {
			if err := telemetry.NewWebServer(cfg.webAddr, hub).Start(ctx); err != nil {
				logger.Error("web server", logging.Field{Key: "error", Value: err.Error()})
			}
		}()
		logger.Info("telemetry endpoint", logging.Field{Key: "addr", Value: cfg.webAddr})
	}

	pipeline := sim.Pipeline{
		Transceiver: sim.Transceiver{
			Config:        radarCfg,
			Pattern:       pattern,
			RxGainDB:      cfg.rxGainDB,
			NoiseFigureDB: cfg.noiseFigureDB,
			Seed:          cfg.seed,
		},
		Processor: sim.ProcessorConfig{
			ADCRate:     cfg.adcRate,
			IFBandwidth: cfg.ifBandwidth,
		},
		Logger: logger,
	}

	for i, tgt := range scen.Targets {
		result, err := pipeline.Run(tgt, i)
		if err != nil {
			return fmt.Errorf("target %d: %w", i, err)
		}
		reporters.Report(telemetry.Sample{
			Timestamp:  time.Now(),
			PulseIndex: i,
			RangeM:     result.Estimate.RangeM,
			BeatFreqHz: result.Estimate.BeatFreq,
			Status:     string(result.Estimate.Status),
			Warnings:   result.Warnings,
		})
		if hub != nil {
			hub.PublishSpectrum(telemetry.SpectrumFrame{
				PulseIndex:   i,
				IFSampleRate: result.IFSampleRate,
				Freqs:        result.Freqs,
				Magnitudes:   result.Spectrum,
			})
		}
	}

	if cfg.webAddr != "" {
		logger.Info("serving telemetry until interrupted")
		<-ctx.Done()
	}
	return nil
}

type cliConfig struct {
	startFreq     float64
	bandwidth     float64
	pulseTime     float64
	sampleRate    float64
	adcRate       float64
	ifBandwidth   float64
	rxGainDB      float64
	noiseFigureDB float64
	seed          uint64
	scenarioPath  string
	webAddr       string
	historyLimit  int
	logLevel      string
	logJSON       bool
}

type persistentConfig struct {
	StartFreq     float64 `json:"start_freq"`
	Bandwidth     float64 `json:"bandwidth"`
	PulseTime     float64 `json:"pulse_time"`
	SampleRate    float64 `json:"sample_rate"`
	ADCRate       float64 `json:"adc_rate"`
	IFBandwidth   float64 `json:"if_bandwidth"`
	RxGainDB      float64 `json:"rx_gain_db"`
	NoiseFigureDB float64 `json:"noise_figure_db"`
	Seed          uint64  `json:"seed"`
	ScenarioPath  string  `json:"scenario"`
	WebAddr       string  `json:"web_addr"`
	HistoryLimit  int     `json:"history_limit"`
	LogLevel      string  `json:"log_level"`
	LogJSON       bool    `json:"log_json"`
}

func parseConfig(args []string, lookup func(string) (string, bool), defaults persistentConfig) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("fmcwsim", flag.ContinueOnError)
	fs.Float64Var(&cfg.startFreq, "start-freq", envFloat(lookup, "FMCW_START_FREQ", defaults.StartFreq), "Sweep start frequency in Hz")
	fs.Float64Var(&cfg.bandwidth, "bandwidth", envFloat(lookup, "FMCW_BANDWIDTH", defaults.Bandwidth), "Swept bandwidth in Hz")
	fs.Float64Var(&cfg.pulseTime, "pulse-time", envFloat(lookup, "FMCW_PULSE_TIME", defaults.PulseTime), "Chirp period in seconds")
	fs.Float64Var(&cfg.sampleRate, "sample-rate", envFloat(lookup, "FMCW_SAMPLE_RATE", defaults.SampleRate), "RF simulation sample rate in Hz")
	fs.Float64Var(&cfg.adcRate, "adc-rate", envFloat(lookup, "FMCW_ADC_RATE", defaults.ADCRate), "Target IF sample rate in Hz")
	fs.Float64Var(&cfg.ifBandwidth, "if-bandwidth", envFloat(lookup, "FMCW_IF_BANDWIDTH", defaults.IFBandwidth), "Unambiguous IF band limit in Hz")
	fs.Float64Var(&cfg.rxGainDB, "rx-gain", envFloat(lookup, "FMCW_RX_GAIN", defaults.RxGainDB), "Receiver gain in dB")
	fs.Float64Var(&cfg.noiseFigureDB, "noise-figure", envFloat(lookup, "FMCW_NOISE_FIGURE", defaults.NoiseFigureDB), "Receiver noise figure in dB")
	fs.Uint64Var(&cfg.seed, "seed", envUint(lookup, "FMCW_SEED", defaults.Seed), "Base noise seed (partitioned per pulse)")
	fs.StringVar(&cfg.scenarioPath, "scenario", envString(lookup, "FMCW_SCENARIO", defaults.ScenarioPath), "Scenario YAML file (targets and antenna pattern)")
	fs.StringVar(&cfg.webAddr, "web-addr", envString(lookup, "FMCW_WEB_ADDR", defaults.WebAddr), "Optional telemetry listen address (e.g. :8080)")
	fs.IntVar(&cfg.historyLimit, "history-limit", envInt(lookup, "FMCW_HISTORY_LIMIT", defaults.HistoryLimit), "Maximum samples kept in telemetry history")
	fs.StringVar(&cfg.logLevel, "log-level", envString(lookup, "FMCW_LOG_LEVEL", defaults.LogLevel), "Log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.logJSON, "log-json", defaults.LogJSON, "Emit logs as JSON")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

func persistentFromCLI(cfg cliConfig) persistentConfig {
	return persistentConfig{
		StartFreq:     cfg.startFreq,
		Bandwidth:     cfg.bandwidth,
		PulseTime:     cfg.pulseTime,
		SampleRate:    cfg.sampleRate,
		ADCRate:       cfg.adcRate,
		IFBandwidth:   cfg.ifBandwidth,
		RxGainDB:      cfg.rxGainDB,
		NoiseFigureDB: cfg.noiseFigureDB,
		Seed:          cfg.seed,
		ScenarioPath:  cfg.scenarioPath,
		WebAddr:       cfg.webAddr,
		HistoryLimit:  cfg.historyLimit,
		LogLevel:      cfg.logLevel,
		LogJSON:       cfg.logJSON,
	}
}

func loadOrCreateConfig(path string) (persistentConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultPersistentConfig()
			if saveErr := saveConfig(path, cfg); saveErr != nil {
				return persistentConfig{}, saveErr
			}
			return cfg, nil
		}
		return persistentConfig{}, err
	}
	defer f.Close()

	var cfg persistentConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return persistentConfig{}, err
	}
	return cfg, nil
}

func saveConfig(path string, cfg persistentConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func defaultPersistentConfig() persistentConfig {
	return persistentConfig{
		StartFreq:     1e9,
		Bandwidth:     5e9,
		PulseTime:     40e-6,
		SampleRate:    2e10,
		ADCRate:       30e6,
		IFBandwidth:   15e6,
		RxGainDB:      20,
		NoiseFigureDB: 10,
		Seed:          1,
		HistoryLimit:  500,
		LogLevel:      "info",
	}
}

func envFloat(lookup func(string) (string, bool), key string, def float64) float64 {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envInt(lookup func(string) (string, bool), key string, def int) int {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envUint(lookup func(string) (string, bool), key string, def uint64) uint64 {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envString(lookup func(string) (string, bool), key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return def
}
