package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/alarm"
	"github.com/drp-home/climatemaster/pkg/ambient"
	"github.com/drp-home/climatemaster/pkg/boiler"
	"github.com/drp-home/climatemaster/pkg/bus"
	"github.com/drp-home/climatemaster/pkg/config"
	"github.com/drp-home/climatemaster/pkg/controller"
	"github.com/drp-home/climatemaster/pkg/controller/radiant"
	"github.com/drp-home/climatemaster/pkg/controller/vmc"
	"github.com/drp-home/climatemaster/pkg/heatmeter"
	"github.com/drp-home/climatemaster/pkg/history"
	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
	"github.com/drp-home/climatemaster/pkg/weather"
)

type event struct {
	id    string
	value string
}

// Status is the read surface published after every cycle.
type Status struct {
	Season    *season.Estimate   `json:"season"`
	Zone      season.ComfortZone `json:"zone"`
	Setpoints season.Setpoints   `json:"setpoints"`
	Ambient   *ambient.Ambient   `json:"ambient"`
	Alarms    []string           `json:"alarms"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// App owns the telemetry snapshot and runs the decision loop. State
// reports and ticks are funneled through one channel into a single
// goroutine, so the snapshot has exactly one writer and cycles never
// overlap.
type App struct {
	wg  *sync.WaitGroup
	cli *config.CliConfig
	hub *config.Hub

	bus         bus.Bus
	snap        *telemetry.Snapshot
	recorder    history.Recorder
	controllers []controller.Controller
	alarms      *alarm.ActiveAlarms

	events chan event
	now    func() time.Time

	mutex  sync.RWMutex
	status Status
}

func New(cli *config.CliConfig, hub *config.Hub, b bus.Bus, recorder history.Recorder) *App {
	snap := telemetry.New(0)
	a := &App{
		wg:       &sync.WaitGroup{},
		cli:      cli,
		hub:      hub,
		bus:      b,
		snap:     snap,
		recorder: recorder,
		alarms:   &alarm.ActiveAlarms{},
		events:   make(chan event, 64),
		now:      time.Now,
	}
	a.controllers = []controller.Controller{
		vmc.New(b, snap, hub),
		radiant.New(b, snap, hub, recorder),
	}
	return a
}

func (a *App) Start(ctx context.Context) error {
	err := a.bus.Subscribe(a.hub.EntityIDs(), a.Report)
	if err != nil {
		return err
	}

	interval := time.Duration(a.cli.Interval) * time.Second
	if a.cli.BoilerAddress != "" {
		rad := a.hub.Devices.Radiant.Sensors
		p := boiler.New(a.cli.BoilerAddress, time.Duration(a.cli.BoilerInterval)*time.Second,
			rad.BoilerSupply, rad.BoilerReturn, a.Report)
		p.Start(ctx, a.wg)
	}
	if a.cli.HeatMeterDevice != "" {
		m := heatmeter.New(a.cli.HeatMeterDevice, a.cli.HeatMeterAddress)
		m.Start(ctx, a.wg, time.Duration(a.cli.HeatMeterInterval)*time.Second,
			a.hub.Devices.VMC.Sensors.TWater, a.Report)
	}

	a.wg.Add(1)
	go a.loop(ctx, interval)
	return nil
}

func (a *App) Wait() {
	a.wg.Wait()
}

// Report feeds one state report into the decision loop. It is the bus
// subscription callback and the poller sink, safe from any goroutine.
func (a *App) Report(id, value string) {
	select {
	case a.events <- event{id: id, value: value}:
	default:
		logrus.WithField("entity", id).Warn("app: event queue full, dropping report")
	}
}

func (a *App) loop(ctx context.Context, interval time.Duration) {
	defer a.wg.Done()

	delay := nextDelay(interval)
	logrus.Debug("app: scheduling first cycle in ", delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case e := <-a.events:
			a.handleEvent(e)
		case <-timer.C:
			timer.Reset(nextDelay(interval))
			a.runCycle()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) handleEvent(e event) {
	a.snap.SetAt(e.id, e.value, a.now())

	if a.recorder != nil {
		if err := a.recorder.Record(e.id, e.value, a.now()); err != nil {
			logrus.WithError(err).Debug("app: recording state")
		}
	}

	alarms := a.hub.Devices.VMC.Alarms
	if e.id == alarms.Alarm || e.id == alarms.HighWaterTemp {
		a.trackAlarm(e)
	}
}

func (a *App) trackAlarm(e event) {
	if e.value == "on" {
		if a.alarms.Add(e.id) {
			logrus.WithField("alarm", e.id).Warn("app: device alarm raised")
		}
		return
	}
	if a.alarms.Remove(e.id) {
		logrus.WithField("alarm", e.id).Info("app: device alarm cleared")
	}
}

// runCycle executes one decision pass: estimate the season, resolve
// the comfort zone, aggregate the home reading and reconcile the
// device controllers against it.
func (a *App) runCycle() {
	now := a.now()

	forecast := weather.Forecasts(a.snap, a.hub.Weather)
	est := season.FromForecast(now, forecast)
	if est == nil {
		logrus.Error("app: no season interval for today, skipping cycle")
		return
	}
	zone, ok := season.Resolve(est)
	if !ok {
		logrus.WithField("season", est.Effective()).Error("app: no comfort zone, skipping cycle")
		return
	}

	amb, err := a.aggregate()
	if err != nil {
		logrus.WithError(err).Warn("app: ambient unavailable, skipping cycle")
		return
	}

	cycle := &controller.Cycle{
		Now:       now,
		Season:    est,
		Zone:      zone,
		Setpoints: zone.Setpoints(),
		Ambient:   amb,
	}
	for _, c := range a.controllers {
		if err := c.Reconcile(cycle); err != nil {
			logrus.WithError(err).Error("app: reconcile failed")
		}
	}

	a.publishStatus(cycle)
}

func (a *App) aggregate() (*ambient.Ambient, error) {
	areas := a.hub.IndoorAreas()
	var samples []ambient.Sample
	for _, area := range areas {
		temperature, okT := a.snap.Float(area.Sensors.Temperature)
		humidity, okH := a.snap.Float(area.Sensors.Humidity)
		if !okT || !okH {
			logrus.WithField("area", area.Name).Debug("app: area reading missing")
			continue
		}
		samples = append(samples, ambient.Sample{
			Zone:        area.Name,
			Area:        area.Mq,
			Temperature: temperature,
			Humidity:    humidity,
		})
	}

	amb, err := ambient.Aggregate(samples, len(areas))
	if errors.Is(err, ambient.ErrTooManyMissing) {
		return nil, err
	}
	if err != nil {
		logrus.WithError(err).Warn("app: aggregate failed")
		return nil, err
	}
	return amb, nil
}

func (a *App) publishStatus(cycle *controller.Cycle) {
	status := Status{
		Season:    cycle.Season,
		Zone:      cycle.Zone,
		Setpoints: cycle.Setpoints,
		Ambient:   cycle.Ambient,
		Alarms:    a.alarms.Active(),
		UpdatedAt: cycle.Now,
	}

	a.mutex.Lock()
	a.status = status
	a.mutex.Unlock()

	b, err := json.Marshal(status)
	if err != nil {
		logrus.WithError(err).Error("app: marshal status")
		return
	}
	if err := a.bus.PublishRetained("status", b); err != nil {
		logrus.WithError(err).Error("app: publish status")
	}
}

// Status returns the last published cycle summary.
func (a *App) Status() Status {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.status
}
