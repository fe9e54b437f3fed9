package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"smokeless/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.String())
	}
	if c.conf.Storage.Driver != "memory" && c.conf.Storage.Path == "" {
		return errors.New("invalid configuration: storage.path is required for the " + c.conf.Storage.Driver + " driver")
	}
	return nil
}
