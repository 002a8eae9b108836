package main

import (
	"strconv"
	"time"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
)

// dateOrToday parses a YYYY-MM-DD flag value; empty means today.
func dateOrToday(s string, now time.Time) (model.Date, error) {
	if s == "" {
		return model.NewDate(now), nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	return d, nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64) + "h"
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
