package tray

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/getlantern/systray"
	"github.com/ncruces/zenity"
	"github.com/petems/click-tray/internal/clicker"
	"github.com/petems/click-tray/internal/config"
	"github.com/petems/click-tray/internal/hotkey"
	"github.com/petems/click-tray/internal/inject"
	"github.com/petems/click-tray/internal/logging"
	"github.com/petems/click-tray/internal/notify"
	"github.com/rs/zerolog"
)

// Controller is the part of the clicker the tray drives.
type Controller interface {
	RegisterHotkey(ctx context.Context, id int, modifiers, keyCode uint32, clickType inject.ClickType) error
	UnregisterHotkey(ctx context.Context, id int) error
	ConfigChange(ctx context.Context, times, durationMS int) error
	Start(ctx context.Context, id int) error
	Stop(ctx context.Context, id int) error
}

var hotkeyChoices = []string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"}

var buttonChoices = []inject.ClickType{inject.Left, inject.Right, inject.Middle}

type UI struct {
	ctl      Controller
	notifier *notify.Notifier
	version  string
	commit   string
	log      zerolog.Logger

	mu  sync.Mutex // guards cfg and the live binding
	cfg *config.Config

	// Live binding. It starts from cfg and is never saved.
	accel     string
	clickType inject.ClickType

	running atomic.Bool
	ready   atomic.Bool

	// Menu items
	mStartStop *systray.MenuItem
	mHotkey    *systray.MenuItem
	mButton    *systray.MenuItem
	mInterval  *systray.MenuItem
	mTimes     *systray.MenuItem
	mNotify    *systray.MenuItem

	hotkeyItems map[string]*systray.MenuItem
	buttonItems map[inject.ClickType]*systray.MenuItem
}

func New(ctl Controller, cfg *config.Config, notifier *notify.Notifier, log zerolog.Logger, version, commit string) *UI {
	return &UI{
		ctl:      ctl,
		cfg:      cfg,
		notifier: notifier,
		version:  version,
		commit:   commit,
		log:      log.With().Str("component", "tray").Logger(),

		accel:     cfg.Hotkey,
		clickType: cfg.ClickType,
	}
}

// SetController sets the clicker reference (for circular dependency resolution)
func (u *UI) SetController(ctl Controller) {
	u.ctl = ctl
}

// Apply pushes the saved click settings to the clicker and registers the
// configured start/stop hotkey.
func (u *UI) Apply(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.ctl.ConfigChange(ctx, u.cfg.Click.Times, u.cfg.Click.DurationMS); err != nil {
		return err
	}
	mods, key, err := hotkey.Parse(u.accel)
	if err != nil {
		return err
	}
	if err := u.ctl.RegisterHotkey(ctx, u.cfg.HotkeyID, mods, key, u.clickType); err != nil {
		return err
	}
	u.log.Info().Str("hotkey", hotkey.Format(mods, key)).Stringer("button", u.clickType).Msg("Hotkey registered")
	return nil
}

// StatusChanged implements app.StatusObserver.
func (u *UI) StatusChanged(running bool) {
	u.running.Store(running)
	if !u.ready.Load() {
		return
	}
	u.updateStatus(running)
	if running {
		u.mStartStop.SetTitle("Stop Clicking")
	} else {
		u.mStartStop.SetTitle("Start Clicking")
	}
}

func (u *UI) Run(ctx context.Context) error {
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	u.mu.Lock()
	defer u.mu.Unlock()

	// Use emoji instead of icon
	u.updateStatus(u.running.Load())
	systray.SetTooltip("Auto clicker")

	// Build menu
	u.mStartStop = systray.AddMenuItem("Start Clicking", "Start or stop clicking")
	systray.AddSeparator()

	u.mHotkey = systray.AddMenuItem(hotkeyTitle(u.accel), "Select the start/stop hotkey")
	u.buildHotkeyMenu()

	u.mButton = systray.AddMenuItem(buttonTitle(u.clickType), "Select the mouse button")
	u.buildButtonMenu()

	u.mInterval = systray.AddMenuItem(intervalTitle(u.cfg.Click.DurationMS), "Time between clicks")
	u.mTimes = systray.AddMenuItem(timesTitle(u.cfg.Click.Times), "Clicks per run")

	systray.AddSeparator()
	u.mNotify = systray.AddMenuItemCheckbox("Notifications", "Show start/stop notifications", u.cfg.Notifications)

	systray.AddSeparator()
	mLogs := systray.AddMenuItem("Open Logs", "View application logs")
	mAbout := systray.AddMenuItem("About", "About Click Tray")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	if u.running.Load() {
		u.mStartStop.SetTitle("Stop Clicking")
	}
	u.ready.Store(true)

	// Event loop
	go u.handleEvents(mLogs, mAbout, mQuit)
}

func (u *UI) handleEvents(mLogs, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mStartStop.ClickedCh:
			u.toggleClicking()
		case <-u.mInterval.ClickedCh:
			u.promptInterval()
		case <-u.mTimes.ClickedCh:
			u.promptTimes()
		case <-u.mNotify.ClickedCh:
			u.toggleNotifications()
		case <-mLogs.ClickedCh:
			u.openLogs()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) buildHotkeyMenu() {
	u.hotkeyItems = make(map[string]*systray.MenuItem)

	for _, name := range hotkeyChoices {
		item := u.mHotkey.AddSubMenuItemCheckbox(name, "", strings.EqualFold(name, u.accel))
		u.hotkeyItems[name] = item

		go func(name string, menuItem *systray.MenuItem) {
			for {
				<-menuItem.ClickedCh
				if err := u.SetHotkey(context.Background(), name); err != nil {
					u.reportError("Failed to change hotkey", err)
				}
			}
		}(name, item)
	}
}

func (u *UI) buildButtonMenu() {
	u.buttonItems = make(map[inject.ClickType]*systray.MenuItem)

	for _, ct := range buttonChoices {
		item := u.mButton.AddSubMenuItemCheckbox(buttonLabel(ct), "", ct == u.clickType)
		u.buttonItems[ct] = item

		go func(ct inject.ClickType, menuItem *systray.MenuItem) {
			for {
				<-menuItem.ClickedCh
				if err := u.SetClickType(context.Background(), ct); err != nil {
					u.reportError("Failed to change mouse button", err)
				}
			}
		}(ct, item)
	}
}

// SetHotkey moves the start/stop binding to a new accelerator.
func (u *UI) SetHotkey(ctx context.Context, accel string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.rebind(ctx, accel, u.clickType); err != nil {
		return err
	}
	old := u.accel
	u.accel = accel
	u.log.Info().Str("from", old).Str("to", accel).Msg("Changed hotkey")

	if u.ready.Load() {
		u.mHotkey.SetTitle(hotkeyTitle(accel))
		for name, item := range u.hotkeyItems {
			if strings.EqualFold(name, accel) {
				item.Check()
			} else {
				item.Uncheck()
			}
		}
	}
	return nil
}

// SetClickType re-registers the hotkey so new runs click ct.
func (u *UI) SetClickType(ctx context.Context, ct inject.ClickType) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.rebind(ctx, u.accel, ct); err != nil {
		return err
	}
	old := u.clickType
	u.clickType = ct
	u.log.Info().Stringer("from", old).Stringer("to", ct).Msg("Changed mouse button")

	if u.ready.Load() {
		u.mButton.SetTitle(buttonTitle(ct))
		for c, item := range u.buttonItems {
			if c == ct {
				item.Check()
			} else {
				item.Uncheck()
			}
		}
	}
	return nil
}

// rebind swaps the binding under the configured id. If the new binding is
// refused the previous one is restored. Caller holds u.mu.
func (u *UI) rebind(ctx context.Context, accel string, ct inject.ClickType) error {
	mods, key, err := hotkey.Parse(accel)
	if err != nil {
		return err
	}
	id := u.cfg.HotkeyID

	if err := u.ctl.UnregisterHotkey(ctx, id); err != nil && !errors.Is(err, clicker.ErrNotRegistered) {
		return err
	}
	if err := u.ctl.RegisterHotkey(ctx, id, mods, key, ct); err != nil {
		if oldMods, oldKey, perr := hotkey.Parse(u.accel); perr == nil {
			if rerr := u.ctl.RegisterHotkey(ctx, id, oldMods, oldKey, u.clickType); rerr != nil {
				u.log.Error().Err(rerr).Str("hotkey", u.accel).Msg("Failed to restore hotkey")
			}
		}
		return err
	}
	return nil
}

// SetClickSettings changes the click budget and interval for the next run.
func (u *UI) SetClickSettings(ctx context.Context, times, durationMS int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	durationMS = config.ClampDuration(durationMS)
	if times < 0 {
		times = 0
	}
	if err := u.ctl.ConfigChange(ctx, times, durationMS); err != nil {
		return err
	}
	u.cfg.Click = config.ClickConfig{Times: times, DurationMS: durationMS}
	u.save()

	if u.ready.Load() {
		u.mInterval.SetTitle(intervalTitle(durationMS))
		u.mTimes.SetTitle(timesTitle(times))
	}
	return nil
}

func (u *UI) toggleClicking() {
	u.mu.Lock()
	id := u.cfg.HotkeyID
	u.mu.Unlock()

	var err error
	if u.running.Load() {
		err = u.ctl.Stop(context.Background(), id)
	} else {
		err = u.ctl.Start(context.Background(), id)
	}
	if err != nil {
		u.reportError("Failed to toggle clicking", err)
	}
}

func (u *UI) promptInterval() {
	u.mu.Lock()
	click := u.cfg.Click
	u.mu.Unlock()

	text, err := zenity.Entry(
		fmt.Sprintf("Milliseconds between clicks (%d to %d):", config.MinDurationMS, config.MaxDurationMS),
		zenity.Title("Click Interval"),
		zenity.EntryText(strconv.Itoa(click.DurationMS)),
	)
	if err != nil {
		return // Cancelled
	}
	ms, err := parseInterval(text)
	if err != nil {
		u.showError("Invalid interval", err)
		return
	}
	if err := u.SetClickSettings(context.Background(), click.Times, ms); err != nil {
		u.reportError("Failed to change interval", err)
	}
}

func (u *UI) promptTimes() {
	u.mu.Lock()
	click := u.cfg.Click
	u.mu.Unlock()

	text, err := zenity.Entry(
		"Clicks per run (0 or empty for no limit):",
		zenity.Title("Click Count"),
		zenity.EntryText(strconv.Itoa(click.Times)),
	)
	if err != nil {
		return // Cancelled
	}
	times, err := parseTimes(text)
	if err != nil {
		u.showError("Invalid click count", err)
		return
	}
	if err := u.SetClickSettings(context.Background(), times, click.DurationMS); err != nil {
		u.reportError("Failed to change click count", err)
	}
}

func (u *UI) toggleNotifications() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.cfg.Notifications = !u.cfg.Notifications
	u.notifier.SetEnabled(u.cfg.Notifications)
	if u.cfg.Notifications {
		u.mNotify.Check()
		u.log.Info().Msg("Enabled notifications")
	} else {
		u.mNotify.Uncheck()
		u.log.Info().Msg("Disabled notifications")
	}
	u.save()
}

func (u *UI) openLogs() {
	path := logging.Path()
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		u.log.Error().Err(err).Str("path", path).Msg("Failed to open logs")
	}
}

func (u *UI) showAbout() {
	msg := fmt.Sprintf("Click Tray %s (%s)\nAuto clicker", u.version, u.commit)
	if err := zenity.Info(msg, zenity.Title("About Click Tray")); err != nil {
		u.log.Debug().Err(err).Msg("About dialog closed")
	}
}

// save writes the config. Caller holds u.mu.
func (u *UI) save() {
	if err := u.cfg.Save(); err != nil {
		u.log.Error().Err(err).Str("path", u.cfg.Path()).Msg("Failed to save config")
	}
}

func (u *UI) reportError(msg string, err error) {
	u.log.Error().Err(err).Msg(msg)
	u.notifier.Error(fmt.Sprintf("%s: %v", msg, err))
}

func (u *UI) showError(title string, err error) {
	if zerr := zenity.Error(err.Error(), zenity.Title(title)); zerr != nil {
		u.log.Debug().Err(zerr).Msg("Error dialog closed")
	}
}

func (u *UI) onExit() {
	u.log.Info().Msg("Tray exited")
}

// updateStatus sets the tray title with a pointer emoji and status indicator
func (u *UI) updateStatus(running bool) {
	systray.SetTitle(fmt.Sprintf("🖱 %s", emojiForStatus(running)))
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(running bool) string {
	if running {
		return "🔴" // Red - clicking
	}
	return "🟢" // Green - ready/idle
}

func hotkeyTitle(accel string) string {
	return "Hotkey: " + accel
}

func buttonLabel(ct inject.ClickType) string {
	s := ct.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buttonTitle(ct inject.ClickType) string {
	return "Button: " + buttonLabel(ct)
}

func intervalTitle(ms int) string {
	return fmt.Sprintf("Interval: %d ms…", ms)
}

func timesTitle(times int) string {
	if times == 0 {
		return "Clicks: unlimited…"
	}
	return fmt.Sprintf("Clicks: %d…", times)
}

// parseInterval reads a millisecond interval and clamps it to the accepted
// range.
func parseInterval(s string) (int, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number of milliseconds", s)
	}
	return config.ClampDuration(ms), nil
}

// parseTimes reads a click budget. Empty means no limit.
func parseTimes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a click count", s)
	}
	return n, nil
}
