// Command thermostat samples a temperature sensor, drives the cooling, heating
// and exhaust PWM outputs toward a button-adjustable setpoint, and reports
// both temperatures over a serial line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/thermostat/internal/adc"
	"github.com/sweeney/thermostat/internal/config"
	"github.com/sweeney/thermostat/internal/controller"
	"github.com/sweeney/thermostat/internal/gpio"
	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/pwm"
	"github.com/sweeney/thermostat/internal/report"
	"github.com/sweeney/thermostat/internal/serial"
	"github.com/sweeney/thermostat/internal/status"
)

func main() {
	configPath := flag.String("config", "/etc/thermostat.yaml", "YAML config file (missing file uses defaults)")
	var o overrides
	o.register(flag.CommandLine)
	printState := flag.Bool("print-state", false, "Sample once, print the computed state and exit")
	listPorts := flag.Bool("list-ports", false, "List serial ports and exit")

	flag.Parse()

	if *listPorts {
		if err := printPorts(); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	o.apply(cfg, explicitFlags(flag.CommandLine))

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// overrides holds the flag values that take precedence over the config file
// when given explicitly on the command line.
type overrides struct {
	period    time.Duration
	debounce  time.Duration
	setpoint  int
	exhaust   string
	heartbeat time.Duration
	port      string
}

func (o *overrides) register(fs *flag.FlagSet) {
	fs.DurationVar(&o.period, "period", time.Second, "Sampling period")
	fs.DurationVar(&o.debounce, "debounce", controller.DefaultDebounce, "Quiet interval after a button press")
	fs.IntVar(&o.setpoint, "setpoint", int(controller.DefaultSetpoint), "Initial setpoint in °F")
	fs.StringVar(&o.exhaust, "exhaust", string(logic.ExhaustLiteral), `Exhaust predicate ("literal" or "two-sided")`)
	fs.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat log interval (0 to disable)")
	fs.StringVar(&o.port, "port", serial.DefaultPort, "Serial port for the status line")
}

// explicitFlags returns the names of the flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (o overrides) apply(cfg *config.Config, set map[string]bool) {
	if set["period"] {
		cfg.Control.Period = o.period
	}
	if set["debounce"] {
		cfg.Control.Debounce = o.debounce
	}
	if set["setpoint"] {
		cfg.Control.InitialSetpoint = o.setpoint
	}
	if set["exhaust"] {
		cfg.Control.ExhaustPredicate = o.exhaust
	}
	if set["heartbeat"] {
		cfg.Heartbeat = o.heartbeat
	}
	if set["port"] {
		cfg.Serial.Port = o.port
	}
}

func printPorts() error {
	ports, err := serial.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func run(cfg *config.Config, printState bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	law, err := cfg.Law()
	if err != nil {
		return err
	}

	// Initialize sensor
	fe := adc.NewIIO(adc.IIOPath(cfg.Sensor.Device), cfg.Sensor.Channel)
	sensor := controller.NewSensorReader(fe, cfg.Conversion())

	setpoint := logic.Temperature(cfg.Control.InitialSetpoint)
	tracker := status.NewTracker(time.Now(), setpoint, statusConfig(cfg))

	// Print state mode: one sample, nothing actuated
	if printState {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Control.Period)
		defer cancel()
		current, err := sensor.Sample(ctx)
		if err != nil {
			return fmt.Errorf("read sensor %s: %w", fe.Path(), err)
		}
		tracker.RecordCycle(current, setpoint, law.Compute(current, setpoint))
		fmt.Printf("%s\n", status.FormatJSON(tracker.Snapshot()))
		return nil
	}

	// Initialize PWM outputs with their start-up duties
	bank := pwm.NewSysfs(pwm.ChipPath(cfg.PWM.Chip), cfg.PWMChannels(), cfg.PWM.ClockHz)
	defer bank.Close()
	if err := bank.Export(); err != nil {
		return fmt.Errorf("init pwm: %w", err)
	}
	if err := pwm.Init(bank, cfg.PWM.PeriodTicks, pwm.InitialDuty()); err != nil {
		return fmt.Errorf("init pwm: %w", err)
	}
	if err := bank.Enable(); err != nil {
		return fmt.Errorf("enable pwm: %w", err)
	}

	// Initialize GPIO
	leds, err := gpio.NewRealIndicators(cfg.GPIO.Chip, cfg.GPIO.CoolLED, cfg.GPIO.HeatLED)
	if err != nil {
		return fmt.Errorf("init indicators: %w", err)
	}
	defer leds.Close()

	buttons, err := gpio.NewRealEdgeInputs(cfg.GPIO.Chip, cfg.GPIO.Down, cfg.GPIO.Up, cfg.GPIO.Glitch)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	// Initialize serial status line
	port, err := serial.Open(cfg.Serial.Port, cfg.Serial.Baud)
	if err != nil {
		return fmt.Errorf("init serial: %w", err)
	}
	defer port.Close()

	state := controller.NewState(setpoint)
	sampler := controller.NewSampler(state, sensor, law, bank, leds, report.New(port))
	adjuster := controller.NewAdjuster(state, buttons, logic.SetpointStep, cfg.Control.Debounce, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := adjuster.Run(ctx, pressLogger(tracker)); err != nil {
			log.Printf("adjuster stopped: %v", err)
		}
	}()

	log.Printf("started: period=%v debounce=%v setpoint=%dF exhaust=%s clamp=%v serial=%s heartbeat=%v",
		cfg.Control.Period, cfg.Control.Debounce, setpoint, law.Exhaust, law.Clamp, cfg.Serial.Port, cfg.Heartbeat)
	log.Printf("startup: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP"))

	ticker := time.NewTicker(cfg.Control.Period)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctx, sampler, tracker, cfg.Control.Period, cfg.Heartbeat, time.Now, ticker.C, sigCh)
}

func statusConfig(cfg *config.Config) status.Config {
	return status.Config{
		PeriodMs:    cfg.Control.Period.Milliseconds(),
		DebounceMs:  cfg.Control.Debounce.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Exhaust:     cfg.Control.ExhaustPredicate,
		Clamp:       cfg.Control.Clamp,
		SerialPort:  cfg.Serial.Port,
	}
}

func pressLogger(tracker *status.Tracker) func(controller.Press) {
	return func(p controller.Press) {
		log.Printf("button: %s setpoint %dF -> %dF", p.Button, p.Before, p.After)
		tracker.RecordPress(p.Button, p.After)
	}
}

// runLoop fires one sampling period per tick until a signal arrives. Each
// period gets budget to finish its conversion (0 means no limit). Failed
// periods are logged and the loop carries on with the next tick.
func runLoop(ctx context.Context, sampler *controller.Sampler, tracker *status.Tracker, budget, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	lastBeat := startTime

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			log.Printf("shutdown: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN"))
			return nil

		case <-tick:
			cycle, err := runCycle(ctx, sampler, budget)
			if err != nil {
				log.Printf("sampler: %v", err)
				tracker.RecordFault(err)
			}
			// A failed conversion leaves no cycle to record.
			if cycle.Outputs.Branch != "" {
				tracker.RecordCycle(cycle.Current, cycle.Setpoint, cycle.Outputs)
			}

			t := now()
			if heartbeat > 0 && t.Sub(lastBeat) >= heartbeat {
				lastBeat = t
				snap := tracker.Snapshot()
				log.Printf("heartbeat: uptime=%v cycles=%d faults=%d current=%dF setpoint=%dF branch=%s down=%d up=%d",
					t.Sub(startTime), snap.Cycles, snap.Faults, snap.Current, snap.Setpoint,
					snap.Outputs.Branch, snap.Presses.Down, snap.Presses.Up)
			}
		}
	}
}

func runCycle(ctx context.Context, sampler *controller.Sampler, budget time.Duration) (controller.Cycle, error) {
	if budget <= 0 {
		return sampler.Tick(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	return sampler.Tick(ctx)
}
