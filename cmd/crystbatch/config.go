/*
 * config.go, part of gocryst.
 *
 * Copyright 2024 The gocryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
)

//Config collects the batch settings. The YAML/JSON config file uses
//the lowercase key names; command line flags override it.
type Config struct {
	//Symprec is the cartesian distance below which sites overlap.
	Symprec float64 `mapstructure:"symprec"`
	//AngleTolerance in radians; zero or negative defers to Symprec.
	AngleTolerance float64 `mapstructure:"angle_tolerance"`
	//MagSymprec is the moment comparison tolerance; zero or negative
	//falls back to Symprec.
	MagSymprec float64 `mapstructure:"magsymprec"`
	//HallNumber pins a Hall setting; zero selects by Spglib.
	HallNumber int `mapstructure:"hall_number"`
	//Spglib scans settings in spglib order instead of the standard
	//ones.
	Spglib bool `mapstructure:"spglib"`
	//Workers bounds the number of concurrent analyses.
	Workers int `mapstructure:"workers"`
	//Inputs are JSON files, each holding a list of structures.
	Inputs []string `mapstructure:"inputs"`
	//Output is the result file; empty means stdout.
	Output string `mapstructure:"output"`
	//Operations includes the operation lists in the output.
	Operations bool `mapstructure:"operations"`
	//Magnetic analyzes magnetic space groups; all structures must
	//carry moments.
	Magnetic bool `mapstructure:"magnetic"`
	//Action is "axial" (default) or "polar".
	Action string `mapstructure:"action"`
	//Verbose enables progress logging.
	Verbose bool `mapstructure:"verbose"`
}

//LoadConfig reads filename (YAML or JSON, by extension) into a Config
//with defaults filled in. An empty filename returns the defaults.
func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetDefault("symprec", 1e-4)
	v.SetDefault("angle_tolerance", 0.0)
	v.SetDefault("magsymprec", 0.0)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("action", "axial")
	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	if err := conf.Check(); err != nil {
		return nil, err
	}
	return conf, nil
}

//Check validates the settings that the engine cannot defend against
//itself.
func (c *Config) Check() error {
	if c.Symprec <= 0 {
		return fmt.Errorf("crystbatch: symprec must be positive, got %g", c.Symprec)
	}
	if c.Workers < 1 {
		return fmt.Errorf("crystbatch: need at least one worker, got %d", c.Workers)
	}
	if c.Action != "axial" && c.Action != "polar" {
		return fmt.Errorf("crystbatch: action must be \"axial\" or \"polar\", got %q", c.Action)
	}
	if c.HallNumber < 0 || c.HallNumber > crystdata.NumHallSymbols() {
		return fmt.Errorf("crystbatch: hall_number out of range: %d", c.HallNumber)
	}
	return nil
}

//Setting builds the Hall setting selector from the config.
func (c *Config) Setting() crystdata.Setting {
	return crystdata.Setting{HallNumber: c.HallNumber, Spglib: c.Spglib}
}

//Tolerance builds the angle tolerance from the config.
func (c *Config) Tolerance() cryst.AngleTolerance {
	if c.AngleTolerance > 0 {
		return cryst.RadianAngleTolerance(c.AngleTolerance)
	}
	return cryst.DefaultAngleTolerance()
}

//MomentAction maps the action name to the engine constant.
func (c *Config) MomentAction() cryst.MomentAction {
	if c.Action == "polar" {
		return cryst.Polar
	}
	return cryst.Axial
}

//MagTolerance returns the moment tolerance, falling back to Symprec.
func (c *Config) MagTolerance() float64 {
	if c.MagSymprec > 0 {
		return c.MagSymprec
	}
	return c.Symprec
}
