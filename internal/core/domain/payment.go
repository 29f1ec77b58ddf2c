package domain

import "errors"

var ErrPaymentGateway = errors.New("payment gateway error")
var ErrInvalidSignature = errors.New("invalid webhook signature")
var ErrBadPayload = errors.New("malformed webhook payload")
