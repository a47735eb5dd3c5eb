/*

Linefit estimates the parameters of the curve

	y = m*exp(-x/2) + b

from noisy observations whose reported uncertainties are
underestimated by an unknown fraction f. It computes a weighted
least-squares estimate, maximizes the likelihood numerically and then
samples the posterior of (m, b, ln f) with an affine-invariant
ensemble sampler.

The basic usage looks like this:

	linefit

, this will simulate a dataset and run the full pipeline with the
default optimizer (LBFGS-B).

You can fit your own observations and change the optimizer:

	linefit --data points.tsv --method simplex

To see all the options run:

	linefit --help

*/
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("linefit")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("linefit", "Bayesian curve fitting with an ensemble MCMC sampler").Version(version)

	// data
	dataFileName = app.Flag("data", "read observations from a whitespace-delimited file "+
		"(columns: x y yerr); a dataset is simulated by default").ExistingFile()
	nPoints = app.Flag("npoints", "number of simulated observations").Default("50").Int()
	trueM   = app.Flag("true-m", "true slope for the simulation").Default("1.9594").Float64()
	trueB   = app.Flag("true-b", "true offset for the simulation").Default("2.294").Float64()
	trueF   = app.Flag("true-f", "true error underestimation fraction for the simulation").Default("0.534").Float64()

	// maximum likelihood
	method = app.Flag("method", "maximum-likelihood method "+
		"(lbfgsb: limited-memory Broyden-Fletcher-Goldfarb-Shanno with bounding constraints, "+
		"simplex: downhill simplex, "+
		"mh: Metropolis-Hastings, "+
		"annealing: simulated annealing, "+
		"none: start sampling from the initial guess"+
		")").Default("lbfgsb").String()
	iterations = app.Flag("iter", "number of optimizer iterations").Default("10000").Int()
	report     = app.Flag("report", "report every N iterations").Default("10").Int()
	accept     = app.Flag("accept", "report acceptance rate every N iterations").Default("200").Int()
	guessM     = app.Flag("guess-m", "starting guess for the slope").Default("1.0").Float64()
	guessB     = app.Flag("guess-b", "starting guess for the offset").Default("1.0").Float64()
	guessF     = app.Flag("guess-f", "starting guess for the error underestimation fraction").Default("0.1").Float64()
	startF     = app.Flag("start", "read start position from the trajectory or JSON file").ExistingFile()
	randomize  = app.Flag("randomize", "use uniformly distributed random starting point "+
		"within the parameter bounds").Bool()

	// sampling
	walkers = app.Flag("walkers", "number of ensemble walkers").Default("32").Int()
	steps   = app.Flag("steps", "number of sampling steps per walker").Default("5000").Int()
	burnin  = app.Flag("burnin", "number of initial steps to discard per walker").Default("200").Int()
	jitter  = app.Flag("jitter", "Gaussian jitter scale for walker initialization").Default("1e-4").Float64()
	draws   = app.Flag("draws", "number of posterior curves on the predictive plot").Default("100").Int()

	// checkpoint
	checkpointFileName = app.Flag("checkpoint", "checkpoint file name").String()
	checkpointSeconds  = app.Flag("checkpoint-seconds", "checkpoint saving interval").Default("30").Float64()

	// technical
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	outF     = app.Flag("out", "write optimization trajectory to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF       = app.Flag("json", "write json summary to a file").String()
	cornerF     = app.Flag("corner", "corner plot file name").Default("corner.png").String()
	traceF      = app.Flag("trace", "trace plot file name").Default("trace.png").String()
	predictiveF = app.Flag("predictive", "posterior-predictive plot file name").Default("predictive.png").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, pkg := range []string{"linefit", "optimize", "model", "ensemble", "mcplot", "checkpoint"} {
		logging.SetLevel(level, pkg)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)
	rng := rand.New(rand.NewSource(*seed))

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	summary := run(rng)
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
