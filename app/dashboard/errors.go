package dashboard

import "errors"

var (
	ErrUnknownStore   = errors.New("dashboard: unknown session store")
	ErrNilDependency  = errors.New("dashboard: nil dependency")
	ErrInvalidSetting = errors.New("dashboard: invalid setting")
)
