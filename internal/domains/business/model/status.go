// Package model holds the review workflow of business accounts.
package model

import (
	"errors"
	"parkflow/shared/constant"
	"slices"
)

var ErrInvalidTransition = errors.New("status change not allowed")

var transitions = map[string][]string{
	constant.AccountStatusPending:  {constant.AccountStatusApproved, constant.AccountStatusRejected},
	constant.AccountStatusApproved: {constant.AccountStatusBanned},
	constant.AccountStatusRejected: {constant.AccountStatusApproved},
	constant.AccountStatusBanned:   {constant.AccountStatusApproved},
}

// Statuses in review order.
var Statuses = []string{
	constant.AccountStatusPending,
	constant.AccountStatusApproved,
	constant.AccountStatusRejected,
	constant.AccountStatusBanned,
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// LotVisible reports whether lots of an account in status are shown to drivers.
func LotVisible(status string) bool {
	return status == constant.AccountStatusApproved
}
