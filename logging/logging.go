// Package logging builds the server's BeeLogger from configuration.
package logging

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/astaxie/beego/logs"
)

var levels = map[string]int{
	"emergency": logs.LevelEmergency,
	"alert":     logs.LevelAlert,
	"critical":  logs.LevelCritical,
	"error":     logs.LevelError,
	"warning":   logs.LevelWarning,
	"warn":      logs.LevelWarning,
	"notice":    logs.LevelNotice,
	"info":      logs.LevelInformational,
	"debug":     logs.LevelDebug,
	"trace":     logs.LevelDebug,
}

// ParseLevel maps a level name to a logs level.
func ParseLevel(name string) (int, error) {
	l, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("logging: unknown level %q", name)
	}
	return l, nil
}

// New returns a logger writing to the console and, when filename is set, to that file too.
func New(level, filename string) (*logs.BeeLogger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logs.NewLogger()
	if err = log.SetLogger(logs.AdapterConsole, adapterConfig(map[string]interface{}{"level": l})); err != nil {
		return nil, err
	}
	if filename != "" {
		cfg := adapterConfig(map[string]interface{}{"filename": filename, "level": l})
		if err = log.SetLogger(logs.AdapterFile, cfg); err != nil {
			return nil, fmt.Errorf("logging: %s: %w", filename, err)
		}
	}
	log.SetLevel(l)
	log.EnableFuncCallDepth(true)
	return log, nil
}

func adapterConfig(m map[string]interface{}) string {
	b, _ := json.Marshal(m)
	return string(b)
}
