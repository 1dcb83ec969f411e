package entity

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrTargetNotFound   = errors.New("outreach target not found")
	ErrSiteNotFound     = errors.New("website not found")
	ErrPageNotFound     = errors.New("page not found")
	ErrSettingsNotFound = errors.New("settings not found")
)
