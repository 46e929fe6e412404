//go:build tinygo || !cgo

package newtonaux

import "errors"

func ui(cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
