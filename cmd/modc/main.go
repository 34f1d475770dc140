package main

import (
	"flag"
	"log"

	"github.com/goburrow/modbus"

	"github.com/drp-home/climatemaster/pkg/modbusclient"
)

var decimals = flag.Int("decimals", 2, "")

// modc probes boiler registers over tcp modbus, for commissioning the
// poller register map.
func main() {
	address := flag.String("addr", "", "tcp modbus address")
	inputreg := flag.Int("inputreg", 0, "input reg")
	holdingreg := flag.Int("holdingreg", 0, "")
	slaveID := flag.Int("slave", 0, "modbus slave id")
	flag.Parse()

	handler := modbus.NewTCPClientHandler(*address)
	handler.SlaveId = byte(*slaveID)
	client := modbusclient.New(modbus.NewClient(handler), handler.Close)

	var f float64
	var err error
	if isFlagPassed("inputreg") {
		f, err = scale(client.ReadInputRegister(uint16(*inputreg)))
	}
	if isFlagPassed("holdingreg") {
		f, err = scale(client.ReadHoldingRegister16(uint16(*holdingreg)))
	}

	if err != nil {
		log.Println("error was: ", err)
	}
	log.Println("value is: ", f)
	handler.Close()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func scale(i int, err error) (float64, error) {
	f := float64(i) / intPow(10, *decimals)
	return f, err
}

func intPow(base, exp int) float64 {
	result := 1
	for {
		if exp&1 == 1 {
			result *= base
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		base *= base
	}

	return float64(result)
}
