// Package shopinfo loads the static description of the shop used by the
// reply templates and the completion prompt.
package shopinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Info is the shop dictionary. It is read-only after Load.
type Info struct {
	Nombre    string    `mapstructure:"nombre" json:"nombre"`
	Servicios Servicios `mapstructure:"servicios" json:"servicios"`
	Contacto  Contacto  `mapstructure:"contacto" json:"contacto"`
}

type Servicios struct {
	Software    []string `mapstructure:"software" json:"software"`
	Electronica []string `mapstructure:"electronica" json:"electronica"`
}

type Contacto struct {
	Email    string `mapstructure:"email" json:"email"`
	Telefono string `mapstructure:"telefono" json:"telefono"`
}

// Default returns the built-in dictionary used when no file can be loaded
func Default() Info {
	return Info{
		Nombre: "MiTiendaTech",
		Servicios: Servicios{
			Software:    []string{"Desarrollo web"},
			Electronica: []string{"Prototipos con Arduino"},
		},
		Contacto: Contacto{
			Email:    "contacto@mitiendatech.com",
			Telefono: "+00 000 000 000",
		},
	}
}

// Read parses a JSON or YAML shop file.
func Read(path string) (Info, error) {
	if path == "" {
		return Info{}, errors.New("shop info path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return Info{}, fmt.Errorf("failed to read shop info: %w", err)
	}

	var info Info
	if err := v.Unmarshal(&info); err != nil {
		return Info{}, fmt.Errorf("failed to decode shop info: %w", err)
	}
	if err := info.validate(); err != nil {
		return Info{}, err
	}
	return info, nil
}

// Load reads path and falls back to Default on any failure.
func Load(path string) Info {
	info, err := Read(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("using built-in shop info")
		return Default()
	}

	log.Info().Str("path", path).Str("shop", info.Nombre).Msg("shop info loaded")
	return info
}

func (i Info) validate() error {
	switch {
	case strings.TrimSpace(i.Nombre) == "":
		return errors.New("shop info: nombre is required")
	case len(i.Servicios.Software) == 0:
		return errors.New("shop info: servicios.software is required")
	case len(i.Servicios.Electronica) == 0:
		return errors.New("shop info: servicios.electronica is required")
	}
	return nil
}

// SoftwareList joins the software services for display
func (i Info) SoftwareList() string {
	return strings.Join(i.Servicios.Software, ", ")
}

// ElectronicsList joins the electronics services for display
func (i Info) ElectronicsList() string {
	return strings.Join(i.Servicios.Electronica, ", ")
}
