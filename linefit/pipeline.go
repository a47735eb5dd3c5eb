package main

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"syscall"
	"time"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/linefit/checkpoint"
	"bitbucket.org/Davydov/linefit/ensemble"
	"bitbucket.org/Davydov/linefit/mcplot"
	"bitbucket.org/Davydov/linefit/model"
	"bitbucket.org/Davydov/linefit/optimize"
	"bitbucket.org/Davydov/linefit/stats"
)

// parameter names, in the model parameter order
var parNames = []string{"m", "b", "lnf"}

// lastLine returns the last line of the file.
func lastLine(fn string) (line string, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return line, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line = scanner.Text()
	}
	err = scanner.Err()
	return line, err
}

// readStart sets parameter values from a start file: first as the
// last line of a trajectory file, then as a JSON name->value object.
func readStart(par optimize.FloatParameters, fn string) error {
	l, err := lastLine(fn)
	if err == nil {
		err = par.ReadLine(l)
	}
	if err != nil {
		log.Debug("Reading start file as JSON")
		err2 := par.ReadFromJSON(fn)
		// fn is neither trajectory nor correct JSON
		if err2 != nil {
			log.Error("Error reading start position from JSON:", err2)
			return err
		}
	}
	return nil
}

// getOptimizerFromString returns an optimizer from a string.
func getOptimizerFromString(method string, rng *rand.Rand, accept, iterations int) (optimize.Optimizer, error) {
	switch method {
	case "lbfgsb":
		return optimize.NewLBFGSB(), nil
	case "simplex":
		return optimize.NewDS(), nil
	case "mh":
		chain := optimize.NewMH(rng, false, 0)
		chain.AccPeriod = accept
		return chain, nil
	case "annealing":
		chain := optimize.NewMH(rng, true, iterations/5)
		chain.AccPeriod = accept
		return chain, nil
	case "none":
		return optimize.NewNone(), nil
	}
	return nil, fmt.Errorf("unknown optimization method: %s", method)
}

// getData loads observations from a file or simulates them; truths
// is nil for file data.
func getData(rng *rand.Rand) (data *model.Data, truths []float64) {
	if *dataFileName != "" {
		f, err := os.Open(*dataFileName)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		data, err = model.ReadData(f)
		if err != nil {
			log.Fatal("Error reading data:", err)
		}
		log.Infof("Read %d observations from %s", data.Len(), *dataFileName)
		return data, nil
	}

	log.Infof("Simulating %d observations, m=%v, b=%v, f=%v",
		*nPoints, *trueM, *trueB, *trueF)
	data = model.Simulate(rng, *trueM, *trueB, *trueF, *nPoints)
	return data, []float64{*trueM, *trueB, math.Log(*trueF)}
}

// resumable is true if the checkpoint holds an unfinished run with
// the expected ensemble geometry. A checkpoint from a different model
// or walker count must not be adopted.
func resumable(saved *checkpoint.CheckpointData, walkers, dims int) bool {
	if saved == nil || saved.Final || len(saved.Positions) != walkers {
		return false
	}
	for _, p := range saved.Positions {
		if len(p) != dims {
			return false
		}
	}
	return true
}

func run(rng *rand.Rand) (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	data, truths := getData(rng)

	m := model.NewExpLine(data)
	m.SetParameters(*guessM, *guessB, math.Log(*guessF))
	if *startF != "" {
		if err := readStart(m.GetFloatParameters(), *startF); err != nil {
			log.Fatal("Error reading start position:", err)
		}
	} else if *randomize {
		log.Info("Using uniform (in the boundaries) random starting point")
		m.GetFloatParameters().Randomize(rng)
	}
	if !m.GetFloatParameters().InRange() {
		log.Fatal("Starting guess is outside the parameter bounds")
	}

	// the model is linear in (m, b); the exact weighted
	// least-squares solution is a useful sanity reference
	lsM, lsB, err := model.LeastSquares(data)
	if err != nil {
		log.Error("Least squares failed:", err)
	} else {
		log.Noticef("Least squares: m=%v, b=%v", lsM, lsB)
		summary.LeastSquares = map[string]float64{"m": lsM, "b": lsB}
	}

	f := os.Stdout
	if *outF != "" {
		f, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer f.Close()
	}

	opt, err := getOptimizerFromString(*method, rng, *accept, *iterations)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Using %s optimization.", *method)

	opt.SetOutput(f)
	opt.SetOptimizable(m)
	opt.SetReportPeriod(*report)
	opt.WatchSignals(os.Interrupt, syscall.SIGUSR2)

	opt.Run(*iterations)
	opt.PrintResults()
	summary.Optimizer = opt.Summary()

	thetaHat := opt.GetMaxLParameters()
	if thetaHat == nil {
		log.Fatal("No maximum-likelihood estimate")
	}
	log.Noticef("Maximum likelihood: m=%v, b=%v, lnf=%v",
		thetaHat[0], thetaHat[1], thetaHat[2])

	// sampling
	positions := ensemble.Ball(rng, thetaHat, *jitter, *walkers)

	var ckp *checkpoint.CheckpointIO
	if *checkpointFileName != "" {
		db, err := bolt.Open(*checkpointFileName, 0666, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		ckp = checkpoint.NewCheckpointIO(db, []byte("ensemble"), *checkpointSeconds)
		saved, err := ckp.Load()
		if err != nil {
			log.Error("Error reading checkpoint:", err)
		} else if resumable(saved, *walkers, len(thetaHat)) {
			log.Noticef("Resuming walkers from checkpoint (iter=%v)", saved.Iter)
			positions = saved.Positions
		}
	}

	sampler := ensemble.NewStretch(rng)
	sampler.AccPeriod = *accept
	sampler.WatchSignals(os.Interrupt, syscall.SIGUSR2)
	if ckp != nil {
		sampler.SetCheckpoint(ckp)
	}

	log.Infof("Sampling: %d walkers, %d steps", *walkers, *steps)
	chain, err := sampler.Sample(m.LogPosterior, positions, *steps)
	if err != nil {
		log.Fatal("Sampling failed:", err)
	}
	summary.Walkers = chain.Walkers()
	summary.Steps = chain.Steps()

	if *burnin >= chain.Steps() {
		log.Fatalf("Burn-in (%d) is not shorter than the chain (%d)", *burnin, chain.Steps())
	}
	// the burn-in length is a heuristic; inspect the trace plot
	flat := chain.Flatten(*burnin)
	summary.Burnin = *burnin
	log.Infof("Flattened %d posterior draws", len(flat))

	estimates := stats.Summarize(flat, parNames)
	estimates = append(estimates,
		stats.Credible("f", stats.Exp(stats.Column(flat, 2, nil))))
	for _, e := range estimates {
		log.Notice(e.String())
	}
	summary.Estimates = estimates

	if err = mcplot.Trace(chain, parNames, *traceF); err != nil {
		log.Error("Error saving trace plot:", err)
	}
	if err = mcplot.Corner(flat, parNames, truths, *cornerF); err != nil {
		log.Error("Error saving corner plot:", err)
	}
	if err = mcplot.Predictive(rng, data, flat, *draws, truths, *predictiveF); err != nil {
		log.Error("Error saving predictive plot:", err)
	}

	endTime := time.Now()
	deltaT := endTime.Sub(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}
