package params

type ListenerConfig struct {
	Network string
	Address string
}

type WebDaemonConfig struct {
	ListenerConfig
	DataDir string

	// SimplifyThreshold is applied to every served route, in degrees.
	SimplifyThreshold float64
	// DebugInfo attaches segment telemetry to served data.
	DebugInfo bool
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:8010",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		ListenerConfig:    DefaultWebListenerConfig(),
		DataDir:           DefaultDatadirRoot,
		SimplifyThreshold: DefaultSimplifyConfig.MinDistance,
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		ListenerConfig: ListenerConfig{
			Network: "tcp",
			Address: "localhost:8011",
		},
		DataDir:           "",
		SimplifyThreshold: DefaultSimplifyConfig.MinDistance,
		DebugInfo:         true,
	}
}
