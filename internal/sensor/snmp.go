package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/logging"
)

var snmpLog = logging.Component("snmp")

// SNMPConfig holds SNMP sensor configuration.
type SNMPConfig struct {
	Host      string
	Port      uint16
	Community string

	// OID of a gauge reporting the temperature as an integer.
	OID string

	// Scale is the number of integer units per degree Celsius
	// (e.g. 10 when the agent reports decidegrees). Defaults to 1.
	Scale int32

	// Timing
	TimeoutMs uint32
	Retries   uint32
}

// SNMPSensor reads a temperature gauge from an SNMP agent. Each
// acquisition opens a fresh session, performs one GET, and closes.
type SNMPSensor struct {
	cfg SNMPConfig
}

// NewSNMPSensor validates cfg and returns an SNMP-backed sensor.
func NewSNMPSensor(cfg SNMPConfig) (*SNMPSensor, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", errors.ErrInvalidArgument)
	}
	if cfg.OID == "" {
		return nil, fmt.Errorf("%w: OID is required", errors.ErrInvalidArgument)
	}
	if cfg.Community == "" {
		return nil, fmt.Errorf("%w: community string is required (refusing an insecure default)", errors.ErrInvalidArgument)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Port == 0 {
		cfg.Port = 161
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = 5000
	}
	return &SNMPSensor{cfg: cfg}, nil
}

// Acquire performs one SNMP GET for the configured OID.
func (s *SNMPSensor) Acquire(ctx context.Context) (Reading, error) {
	client := &gosnmp.GoSNMP{
		Target:    s.cfg.Host,
		Port:      s.cfg.Port,
		Community: s.cfg.Community,
		Version:   gosnmp.Version2c,
		Timeout:   time.Duration(s.cfg.TimeoutMs) * time.Millisecond,
		Retries:   int(s.cfg.Retries),
	}

	if err := client.Connect(); err != nil {
		return Reading{}, failure(err, "connect")
	}
	defer client.Conn.Close()

	select {
	case <-ctx.Done():
		return Reading{}, failure(ctx.Err(), "acquire")
	default:
	}

	pdu, err := client.Get([]string{s.cfg.OID})
	if err != nil {
		return Reading{}, failure(err, "get")
	}
	if len(pdu.Variables) == 0 {
		return Reading{}, fmt.Errorf("%w: no variables returned", errors.ErrSensorFailure)
	}

	variable := pdu.Variables[0]
	var raw int64
	switch variable.Type {
	case gosnmp.Integer:
		raw = int64(variable.Value.(int))
	case gosnmp.Counter32, gosnmp.Counter64, gosnmp.Uinteger32, gosnmp.Gauge32:
		raw = gosnmp.ToBigInt(variable.Value).Int64()
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return Reading{}, fmt.Errorf("%w: OID not found", errors.ErrSensorFailure)
	default:
		return Reading{}, fmt.Errorf("%w: unsupported type: %v", errors.ErrSensorFailure, variable.Type)
	}

	r := splitScaled(raw, s.cfg.Scale)
	snmpLog.Debug("acquired reading", "host", s.cfg.Host, "oid", s.cfg.OID, "raw", raw)
	return r, nil
}
