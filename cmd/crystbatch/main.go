/*
 * main.go, part of gocryst.
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

//crystbatch identifies the space groups of a batch of structures.
//Structures come in as JSON lists, results go out as a JSON list plus
//a summary table on stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/gocryst/gocryst/crystjson"
	"github.com/gocryst/gocryst/dataset"
)

//job is one structure to analyze, tagged with where it came from.
type job struct {
	name      string
	structure crystjson.Structure
}

//outcome holds what the analysis of one structure produced.
type outcome struct {
	result    *crystjson.Result
	magResult *crystjson.MagneticResult
	err       error
}

func main() {
	var configFile, output string
	var workers int
	var symprec float64
	var operations, magnetic, verbose bool
	flag.StringVar(&configFile, "config", "", "YAML or JSON config file")
	flag.StringVar(&output, "o", "", "result file, stdout if empty")
	flag.IntVar(&workers, "workers", 0, "concurrent analyses")
	flag.Float64Var(&symprec, "symprec", 0, "overlap tolerance in cartesian distance")
	flag.BoolVar(&operations, "operations", false, "include operation lists in the output")
	flag.BoolVar(&magnetic, "magnetic", false, "analyze magnetic space groups")
	flag.BoolVar(&verbose, "verbose", false, "log progress")
	flag.Parse()

	conf, err := LoadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			conf.Output = output
		case "workers":
			conf.Workers = workers
		case "symprec":
			conf.Symprec = symprec
		case "operations":
			conf.Operations = operations
		case "magnetic":
			conf.Magnetic = magnetic
		case "verbose":
			conf.Verbose = verbose
		}
	})
	conf.Inputs = append(conf.Inputs, flag.Args()...)
	if err := conf.Check(); err != nil {
		log.Fatal(err)
	}
	if len(conf.Inputs) == 0 {
		log.Fatal("crystbatch: no input files, list them in the config or as arguments")
	}

	jobs, err := readJobs(conf.Inputs)
	if err != nil {
		log.Fatal(err)
	}
	outcomes := analyze(conf, jobs)

	out := io.Writer(os.Stdout)
	if conf.Output != "" {
		f, err := os.Create(conf.Output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := writeResults(conf, outcomes, out); err != nil {
		log.Fatal(err)
	}
	summarize(conf, jobs, outcomes, os.Stdout)
}

//readJobs decodes every input file into one job per structure.
//Unnamed structures get tagged file#index.
func readJobs(inputs []string) ([]job, error) {
	var jobs []job
	for _, filename := range inputs {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		structures, jerr := crystjson.DecodeStructures(f)
		f.Close()
		if jerr != nil {
			return nil, fmt.Errorf("crystbatch: %s: %w", filename, jerr)
		}
		base := filepath.Base(filename)
		for i, s := range structures {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("%s#%d", base, i)
			}
			jobs = append(jobs, job{name: name, structure: s})
		}
	}
	return jobs, nil
}

//analyze fans the jobs out over bounded workers. A failed structure
//records its error instead of stopping the batch.
func analyze(conf *Config, jobs []job) []outcome {
	outcomes := make([]outcome, len(jobs))
	var g errgroup.Group
	g.SetLimit(conf.Workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			outcomes[i] = analyzeOne(conf, &jobs[i])
			if conf.Verbose {
				if outcomes[i].err != nil {
					log.Printf("%s: %v", jobs[i].name, outcomes[i].err)
				} else {
					log.Printf("%s: done", jobs[i].name)
				}
			}
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func analyzeOne(conf *Config, j *job) outcome {
	if conf.Magnetic {
		mc, jerr := j.structure.ToMagneticCell()
		if jerr != nil {
			return outcome{err: jerr}
		}
		d, err := dataset.NewMagnetic(mc, conf.Symprec, conf.Tolerance(), conf.MagTolerance(), conf.MomentAction())
		if err != nil {
			return outcome{err: err}
		}
		r := crystjson.FromMagneticDataset(d, conf.Operations)
		r.Name = j.name
		return outcome{magResult: r}
	}
	cell, jerr := j.structure.ToCell()
	if jerr != nil {
		return outcome{err: jerr}
	}
	d, err := dataset.New(cell, conf.Symprec, conf.Tolerance(), conf.Setting())
	if err != nil {
		return outcome{err: err}
	}
	r := crystjson.FromDataset(d, conf.Operations)
	r.Name = j.name
	return outcome{result: r}
}

//writeResults encodes the successful results as one JSON list.
func writeResults(conf *Config, outcomes []outcome, out io.Writer) error {
	if conf.Magnetic {
		results := make([]*crystjson.MagneticResult, 0, len(outcomes))
		for _, o := range outcomes {
			if o.magResult != nil {
				results = append(results, o.magResult)
			}
		}
		if jerr := crystjson.SendMagneticResults(results, out); jerr != nil {
			return jerr
		}
		return nil
	}
	results := make([]*crystjson.Result, 0, len(outcomes))
	for _, o := range outcomes {
		if o.result != nil {
			results = append(results, o.result)
		}
	}
	if jerr := crystjson.SendResults(results, out); jerr != nil {
		return jerr
	}
	return nil
}

//summarize prints one table row per structure.
func summarize(conf *Config, jobs []job, outcomes []outcome, out io.Writer) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	if conf.Magnetic {
		fmt.Fprintln(w, "structure\tUNI\toperations")
		for i, o := range outcomes {
			if o.err != nil {
				fmt.Fprintf(w, "%s\terror\t%v\n", jobs[i].name, o.err)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", jobs[i].name, o.magResult.UNINumber, o.magResult.NumOperations)
		}
	} else {
		fmt.Fprintln(w, "structure\tgroup\tH-M\tHall\tPearson\toperations")
		for i, o := range outcomes {
			if o.err != nil {
				fmt.Fprintf(w, "%s\terror\t%v\t\t\t\n", jobs[i].name, o.err)
				continue
			}
			r := o.result
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\t%d\n", jobs[i].name, r.Number, r.HMSymbol, r.HallNumber, r.PearsonSymbol, r.NumOperations)
		}
	}
	w.Flush()
}
