package heatmeter

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonaz/gombus"
	"github.com/sirupsen/logrus"
)

// Data is one reading from the heat meter on the water loop.
type Data struct {
	FlowTemp   float64
	ReturnTemp float64
	Time       time.Time
}

// Report delivers one reading to the control loop as if the entity
// published it on the bus.
type Report func(entity, value string)

// Meter polls an M-Bus heat meter over a serial line. The connection
// opens lazily and survives across polls.
type Meter struct {
	device  string
	address int

	conn  gombus.Conn
	mutex sync.Mutex
}

func New(device string, address int) *Meter {
	return &Meter{
		device:  device,
		address: address,
	}
}

func (m *Meter) init() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.conn != nil {
		return nil
	}
	c, err := gombus.DialSerial(m.device)
	if err != nil {
		return err
	}
	m.conn = c
	return nil
}

func (m *Meter) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.conn != nil {
		err := m.conn.Close()
		m.conn = nil
		return err
	}
	return nil
}

// ReadTemps reads flow and return water temperatures. Record layout
// follows the compact frame of the installed meter, flow temperature
// in record 4 and return temperature in record 5.
func (m *Meter) ReadTemps() (*Data, error) {
	err := m.init()
	if err != nil {
		return nil, err
	}

	frame, err := m.read()
	if err != nil {
		// force a redial on the next poll
		m.Close()
		return nil, err
	}
	if len(frame.DataRecords) < 6 {
		return nil, fmt.Errorf("short frame: %d records", len(frame.DataRecords))
	}

	return &Data{
		FlowTemp:   frame.DataRecords[4].Value,
		ReturnTemp: frame.DataRecords[5].Value,
		Time:       time.Now(),
	}, nil
}

func (m *Meter) read() (*gombus.DecodedFrame, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, err := m.conn.Write(gombus.SndNKE(uint8(m.address)))
	if err != nil {
		return nil, err
	}

	err = m.conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	if err != nil {
		return nil, err
	}

	_, err = gombus.ReadSingleCharFrame(m.conn)
	if err != nil {
		return nil, err
	}

	return gombus.ReadSingleFrame(m.conn, m.address)
}

// Start polls the meter on the interval and reports the flow
// temperature as the ventilation unit's water sensor.
func (m *Meter) Start(ctx context.Context, wg *sync.WaitGroup, interval time.Duration, flowEntity string, report Report) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer m.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				data, err := m.ReadTemps()
				if err != nil {
					logrus.WithError(err).Error("heatmeter: read failed")
					continue
				}
				report(flowEntity, strconv.FormatFloat(data.FlowTemp, 'f', 1, 64))
			case <-ctx.Done():
				return
			}
		}
	}()
}
