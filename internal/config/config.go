// Package config loads the thermostat daemon configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/thermostat/internal/gpio"
	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/pwm"
	"github.com/sweeney/thermostat/internal/serial"
)

// Config represents the daemon configuration.
type Config struct {
	Control   ControlConfig `yaml:"control"`
	Sensor    SensorConfig  `yaml:"sensor"`
	PWM       PWMConfig     `yaml:"pwm"`
	GPIO      GPIOConfig    `yaml:"gpio"`
	Serial    SerialConfig  `yaml:"serial"`
	Heartbeat time.Duration `yaml:"heartbeat"` // 0 disables the heartbeat log line
}

// ControlConfig contains the control loop parameters. The setpoint step is
// fixed at logic.SetpointStep and not configurable.
type ControlConfig struct {
	InitialSetpoint  int           `yaml:"initial_setpoint"`
	Period           time.Duration `yaml:"period"`
	Debounce         time.Duration `yaml:"debounce"`
	ExhaustPredicate string        `yaml:"exhaust_predicate"` // "literal" or "two-sided"
	Clamp            bool          `yaml:"clamp"`
}

// SensorConfig selects the IIO channel and its conversion to degrees.
type SensorConfig struct {
	Device  int `yaml:"device"`  // iio:deviceN
	Channel int `yaml:"channel"` // in_voltageN_raw
	Scale   int `yaml:"scale"`
	MaxCode int `yaml:"max_code"`
	Offset  int `yaml:"offset"`
}

// PWMConfig contains the PWM chip and per-output channel numbers.
type PWMConfig struct {
	Chip        int    `yaml:"chip"` // pwmchipN
	Cooling     int    `yaml:"cooling"`
	Heating     int    `yaml:"heating"`
	Exhaust     int    `yaml:"exhaust"`
	ClockHz     uint64 `yaml:"clock_hz"`
	PeriodTicks int    `yaml:"period_ticks"`
}

// GPIOConfig contains the GPIO chip and BCM line numbers.
type GPIOConfig struct {
	Chip    string        `yaml:"chip"`
	Down    int           `yaml:"down"`
	Up      int           `yaml:"up"`
	CoolLED int           `yaml:"cool_led"`
	HeatLED int           `yaml:"heat_led"`
	Glitch  time.Duration `yaml:"glitch"` // kernel debounce on the button lines, 0 disables
}

// SerialConfig contains the status line port settings.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Default returns the configuration matching the reference board.
func Default() *Config {
	conv := logic.DefaultConversion()
	return &Config{
		Control: ControlConfig{
			InitialSetpoint:  70,
			Period:           time.Second,
			Debounce:         250 * time.Millisecond,
			ExhaustPredicate: string(logic.ExhaustLiteral),
			Clamp:            true,
		},
		Sensor: SensorConfig{
			Device:  0,
			Channel: 0,
			Scale:   conv.Scale,
			MaxCode: conv.MaxCode,
			Offset:  conv.Offset,
		},
		PWM: PWMConfig{
			Chip:        0,
			Cooling:     0,
			Heating:     1,
			Exhaust:     2,
			ClockHz:     pwm.DefaultClockHz,
			PeriodTicks: pwm.DefaultPeriodTicks,
		},
		GPIO: GPIOConfig{
			Chip:    "gpiochip0",
			Down:    gpio.DefaultPinDown,
			Up:      gpio.DefaultPinUp,
			CoolLED: gpio.DefaultPinCoolLED,
			HeatLED: gpio.DefaultPinHeatLED,
		},
		Serial: SerialConfig{
			Port: serial.DefaultPort,
			Baud: serial.DefaultBaudRate,
		},
		Heartbeat: 15 * time.Minute,
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults replaces zero values that can never be meant literally.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Control.Period == 0 {
		c.Control.Period = def.Control.Period
	}
	if c.Control.ExhaustPredicate == "" {
		c.Control.ExhaustPredicate = def.Control.ExhaustPredicate
	}

	if c.Sensor.Scale == 0 {
		c.Sensor.Scale = def.Sensor.Scale
	}
	if c.Sensor.MaxCode == 0 {
		c.Sensor.MaxCode = def.Sensor.MaxCode
	}

	if c.PWM.ClockHz == 0 {
		c.PWM.ClockHz = def.PWM.ClockHz
	}
	if c.PWM.PeriodTicks == 0 {
		c.PWM.PeriodTicks = def.PWM.PeriodTicks
	}

	if c.GPIO.Chip == "" {
		c.GPIO.Chip = def.GPIO.Chip
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}
}

// Validate reports every setting the daemon cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Control.Period <= 0 {
		errs = append(errs, fmt.Errorf("control.period must be positive, got %v", c.Control.Period))
	}
	if c.Control.Debounce < 0 {
		errs = append(errs, fmt.Errorf("control.debounce must not be negative, got %v", c.Control.Debounce))
	}
	if _, err := logic.ParseExhaustPredicate(c.Control.ExhaustPredicate); err != nil {
		errs = append(errs, fmt.Errorf("control.exhaust_predicate: %w", err))
	}
	if c.Sensor.MaxCode <= 0 {
		errs = append(errs, fmt.Errorf("sensor.max_code must be positive, got %d", c.Sensor.MaxCode))
	}
	if c.PWM.PeriodTicks <= 0 {
		errs = append(errs, fmt.Errorf("pwm.period_ticks must be positive, got %d", c.PWM.PeriodTicks))
	}
	if c.PWM.PeriodTicks > 0 && c.PWM.PeriodTicks <= logic.FullScale {
		errs = append(errs, fmt.Errorf("pwm.period_ticks must exceed full scale %d, got %d", logic.FullScale, c.PWM.PeriodTicks))
	}
	if c.PWM.Cooling == c.PWM.Heating || c.PWM.Cooling == c.PWM.Exhaust || c.PWM.Heating == c.PWM.Exhaust {
		errs = append(errs, fmt.Errorf("pwm channels must be distinct, got cooling=%d heating=%d exhaust=%d",
			c.PWM.Cooling, c.PWM.Heating, c.PWM.Exhaust))
	}
	lines := map[int]string{}
	for _, l := range []struct {
		name string
		pin  int
	}{
		{"down", c.GPIO.Down},
		{"up", c.GPIO.Up},
		{"cool_led", c.GPIO.CoolLED},
		{"heat_led", c.GPIO.HeatLED},
	} {
		if other, ok := lines[l.pin]; ok {
			errs = append(errs, fmt.Errorf("gpio.%s and gpio.%s share line %d", other, l.name, l.pin))
			continue
		}
		lines[l.pin] = l.name
	}
	if c.Serial.Baud <= 0 {
		errs = append(errs, fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud))
	}
	if c.Heartbeat < 0 {
		errs = append(errs, fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat))
	}

	return errors.Join(errs...)
}

// Law builds the control law described by the control section.
func (c *Config) Law() (logic.Law, error) {
	pred, err := logic.ParseExhaustPredicate(c.Control.ExhaustPredicate)
	if err != nil {
		return logic.Law{}, err
	}
	law := logic.DefaultLaw()
	law.Exhaust = pred
	law.Clamp = c.Control.Clamp
	return law, nil
}

// Conversion returns the raw-code to temperature mapping.
func (c *Config) Conversion() logic.Conversion {
	return logic.Conversion{
		Scale:   c.Sensor.Scale,
		MaxCode: c.Sensor.MaxCode,
		Offset:  c.Sensor.Offset,
	}
}

// PWMChannels maps each output to its channel on the PWM chip.
func (c *Config) PWMChannels() map[logic.Channel]int {
	return map[logic.Channel]int{
		logic.ChannelCooling: c.PWM.Cooling,
		logic.ChannelHeating: c.PWM.Heating,
		logic.ChannelExhaust: c.PWM.Exhaust,
	}
}
