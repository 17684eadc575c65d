package commander

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"featureselect/internal/data"
	"featureselect/internal/search"
)

var ErrInvalidChoice = errors.New("invalid choice")

// RunClassic asks for a dataset file and an algorithm number, then prints
// the plain search trace.
func (c *Commander) RunClassic(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	scanner.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", errors.New("unexpected end of input")
		}
		return scanner.Text(), nil
	}

	c.println("Welcome to the Feature Selection Algorithm.")
	fmt.Fprint(c.out, "Type in the name of the file to test: ")
	filename, err := next()
	if err != nil {
		return err
	}

	ds, err := data.LoadDataset(filename, "normalized")
	if err != nil {
		return err
	}
	c.printf("This dataset has %d features (not including the class attribute), with %d instances.\n",
		ds.NumFeatures(), ds.Len())

	c.println("Type the number of the algorithm you want to run.")
	c.println()
	for i, s := range search.Strategies {
		c.printf("%d. %s\n", i+1, s.Title())
	}

	choice, err := next()
	if err != nil {
		return err
	}
	c.println()
	c.println()

	strategy, err := search.ParseStrategy(choice)
	if err != nil {
		c.println("Invalid choice. Exiting.")
		return fmt.Errorf("%w: %s", ErrInvalidChoice, choice)
	}

	reporter := search.NewTextReporter(c.out)
	_, err = search.Run(ctx, strategy, ds, ds.NumFeatures(),
		search.WithObserver(reporter.Observer()),
		search.WithLogger(c.logger))
	return err
}
