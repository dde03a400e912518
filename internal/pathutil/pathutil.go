// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/studytrack/studytrack/internal/osutil"
)

// EnvVar selects an alternate set of files (e.g. config_dev.yml) so that
// development data stays apart from real data.
const EnvVar = "STUDYTRACK_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbFileName     string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			appDir:         "studytrack",
			configFileName: "config.yml",
			dbFileName:     "studytrack.db",
			logFileName:    "studytrack.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

func Dir() string {
	return paths.appDir
}

func ConfigFilePath() string {
	return paths.configFilePath
}

func DBFilePath() string {
	return paths.dbFilePath
}

// LogFilePath returns the log file path or "" before Initialize succeeded.
func LogFilePath() string {
	if paths == nil {
		return ""
	}

	return paths.logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(EnvVar))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("studytrack_%s.db", env)
		p.logFileName = fmt.Sprintf("studytrack_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}

	dataDir := filepath.Join(xdg.DataHome, p.appDir)

	err = os.MkdirAll(dataDir, osutil.DirPermission)
	if err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}

