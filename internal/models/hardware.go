package models

import (
	"encoding/json"
	"errors"
	"math"
)

type HardwareType string

const (
	HardwareCPUCores   HardwareType = "CPU_CORES"
	HardwareClockSpeed HardwareType = "CLOCK_SPEED"
	HardwareRAM        HardwareType = "RAM"
	HardwareGPU        HardwareType = "GPU"
)

var ErrUnknownHardwareType = errors.New("unknown hardware type")

// ParseHardwareType validates a client-supplied hardware type string.
func ParseHardwareType(s string) (HardwareType, error) {
	switch t := HardwareType(s); t {
	case HardwareCPUCores, HardwareClockSpeed, HardwareRAM, HardwareGPU:
		return t, nil
	default:
		return "", ErrUnknownHardwareType
	}
}

var ErrMaxUpgradesReached = errors.New("hardware is already at its maximum level")

// basePrice anchors the upgrade cost curve. Every stat starts at this price.
const basePrice = 50.0

type HardwareStat struct {
	CurrentLevel     int     `json:"current_level"`
	Value            float64 `json:"value"`
	Unit             string  `json:"unit"`
	UpgradeIncrement float64 `json:"upgrade_increment"`
	UpgradePrice     float64 `json:"upgrade_price"`
}

// Upgrade advances the stat one level, grows its value by the increment and
// reprices the next level. The canonical curve is
//
//	price' = round2(50 * (increment*1.1)^level)
//
// which is strictly increasing in level for any increment >= 1. A maxLevel of
// zero means uncapped.
func (h *HardwareStat) Upgrade(maxLevel int) error {
	if maxLevel > 0 && h.CurrentLevel >= maxLevel {
		return ErrMaxUpgradesReached
	}
	h.CurrentLevel++
	h.Value += h.UpgradeIncrement
	h.UpgradePrice = Round2(basePrice * math.Pow(h.UpgradeIncrement*1.1, float64(h.CurrentLevel)))
	return nil
}

// Computer maps hardware types to their current stats. Each computer is owned
// by exactly one user.
type Computer struct {
	Hardware map[HardwareType]*HardwareStat `json:"hardware"`
}

// ProcessingPower is the product of all non-RAM hardware values. RAM gates
// queue capacity only, not throughput.
func (c *Computer) ProcessingPower() float64 {
	power := 1.0
	for typ, stat := range c.Hardware {
		if typ != HardwareRAM {
			power *= stat.Value
		}
	}
	return power
}

// QueueCapacity is how many jobs may sit in the owner's queue at once.
func (c *Computer) QueueCapacity() int {
	ram, ok := c.Hardware[HardwareRAM]
	if !ok {
		return 0
	}
	return int(ram.Value)
}

func (c *Computer) MarshalJSON() ([]byte, error) {
	type alias Computer
	return json.Marshal(struct {
		*alias
		ProcessingPower float64 `json:"processing_power"`
	}{(*alias)(c), c.ProcessingPower()})
}

func (c *Computer) Clone() *Computer {
	clone := &Computer{Hardware: make(map[HardwareType]*HardwareStat, len(c.Hardware))}
	for typ, stat := range c.Hardware {
		s := *stat
		clone.Hardware[typ] = &s
	}
	return clone
}

// NewStarterComputer builds the hardware every fresh account receives.
func NewStarterComputer() *Computer {
	return &Computer{
		Hardware: map[HardwareType]*HardwareStat{
			HardwareCPUCores: {
				CurrentLevel:     1,
				Value:            2.0,
				Unit:             "Cores",
				UpgradeIncrement: 2.0,
				UpgradePrice:     basePrice,
			},
			HardwareRAM: {
				CurrentLevel:     1,
				Value:            2.0,
				Unit:             "GB",
				UpgradeIncrement: 1.0,
				UpgradePrice:     basePrice,
			},
			HardwareClockSpeed: {
				CurrentLevel:     1,
				Value:            2.0,
				Unit:             "GHz",
				UpgradeIncrement: 1.0,
				UpgradePrice:     basePrice,
			},
		},
	}
}

// StarterGPU is the stat block materialized on a user's first GPU purchase.
// GPUs are not part of starter computers, so the first purchase buys this
// block outright at its listed price.
func StarterGPU() *HardwareStat {
	return &HardwareStat{
		CurrentLevel:     1,
		Value:            50.0,
		Unit:             "H.264 Accelerators",
		UpgradeIncrement: 50.0,
		UpgradePrice:     250.0,
	}
}
