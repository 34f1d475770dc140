package boiler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/modbusclient"
)

// input registers of the boiler unit, hundredths of a degree.
const (
	supplyTempRegister uint16 = 10
	returnTempRegister uint16 = 11
)

// Report delivers one reading to the control loop as if the entity
// published it on the bus.
type Report func(entity, value string)

// Poller reads boiler supply/return temperatures over modbus tcp and
// feeds them into the snapshot through the report callback.
type Poller struct {
	interval     time.Duration
	supplyEntity string
	returnEntity string
	report       Report

	handler *modbus.TCPClientHandler
	client  modbusclient.Client
}

func New(address string, interval time.Duration, supplyEntity, returnEntity string, report Report) *Poller {
	handler := modbus.NewTCPClientHandler(address)
	handler.Timeout = 10 * time.Second
	return &Poller{
		interval:     interval,
		supplyEntity: supplyEntity,
		returnEntity: returnEntity,
		report:       report,
		handler:      handler,
		client:       modbusclient.New(modbus.NewClient(handler), handler.Close),
	}
}

func (p *Poller) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.handler.Close()

		p.poll()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (p *Poller) poll() {
	supply, err := modbusclient.Scale100(p.client.ReadInputRegister(supplyTempRegister))
	if err != nil {
		logrus.WithError(err).Error("boiler: reading supply temperature")
		return
	}
	ret, err := modbusclient.Scale100(p.client.ReadInputRegister(returnTempRegister))
	if err != nil {
		logrus.WithError(err).Error("boiler: reading return temperature")
		return
	}

	p.report(p.supplyEntity, strconv.FormatFloat(supply, 'f', 1, 64))
	p.report(p.returnEntity, strconv.FormatFloat(ret, 'f', 1, 64))
}
