package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode управляет Bubble Tea прогрессом на директорийных прогонах.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

func parseUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	}
	return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// enabled решает, показывать ли прогресс: явный выбор пользователя важнее,
// в режиме auto смотрим на терминал.
func (m uiMode) enabled() bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout)
}
