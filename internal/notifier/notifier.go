// Package notifier pushes rollover messages to the hard75-tray desktop app.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/logger"
	"github.com/julianstephens/hard75/internal/rollover"
)

const secretHeader = "X-Hard75-Secret"

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("hard75-tray is not running")
)

type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// trayLock is the parsed "port|pid|secret" lockfile written by the tray app.
type trayLock struct {
	Port   string
	PID    int
	Secret string
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 3 * time.Second}}
}

func (n *Notifier) Notify(text string) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	lock, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	return n.send(lock.Port, lock.Secret, payload)
}

// Listener returns a rollover listener that forwards the result message to the tray.
// Delivery is best effort: failures are logged at debug level only.
func (n *Notifier) Listener() rollover.Listener {
	return func(res rollover.Result) {
		text := fmt.Sprintf("%s: %s", res.Username, res.Message())
		if err := n.Notify(text); err != nil {
			logger.Debug("Tray notification skipped", "user", res.Username, "action", res.Action, "error", err)
		}
	}
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may override where the lockfile lives
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Debug("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}

	return trayConfigDir, nil
}

func parseLockfile(content string) (trayLock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return trayLock{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || pid <= 0 {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}

	return trayLock{Port: port, PID: pid, Secret: secret}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (trayLock, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}

	lock, err := parseLockfile(string(content))
	if err != nil {
		return trayLock{}, err
	}

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return trayLock{}, fmt.Errorf("%w: no process with PID %d", ErrTrayNotRunning, lock.PID)
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return trayLock{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.PID, constants.TrayExecutablePrefix, process.Executable())
	}

	return lock, nil
}

func (n *Notifier) send(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
