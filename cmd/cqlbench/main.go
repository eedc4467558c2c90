// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Cqlbench is a load-generation tool for an everest REST server.  It
// can bulk-create entities in a collection and run filtered list
// queries against it in parallel.
package main

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/satori/go.uuid"
	"github.com/urfave/cli"

	"github.com/cenix/go-everest/restclient"
	"github.com/cenix/go-everest/restdata"
)

type benchWork struct {
	Client      *restclient.Client
	Collection  *restclient.Collection
	Concurrency int
}

func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

var bench benchWork

var addEntities = cli.Command{
	Name:  "add",
	Usage: "create many entities",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of entities to create",
		},
	},
	Action: func(c *cli.Context) {
		count := c.Int("count")
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		bench.Run(func() {
			for n := range numbers {
				e := restdata.Entity{
					Data: restdata.EntityData{
						"name":     uuid.NewV4().String(),
						"sequence": float64(n),
					},
				}
				_, err := bench.Collection.Add(e)
				if err != nil {
					fmt.Printf("Could not add entity: %v\n", err)
					return
				}
			}
		})
	},
}

var queryEntities = cli.Command{
	Name:  "query",
	Usage: "run filtered list queries as fast as possible",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of queries to run",
		},
		cli.StringFlag{
			Name:  "filter",
			Value: "sequence:greater-than:0",
			Usage: "CQL filter expression to query with",
		},
		cli.IntFlag{
			Name:  "size",
			Value: 10,
			Usage: "page size per query",
		},
	},
	Action: func(c *cli.Context) {
		count := c.Int("count")
		filter := c.String("filter")
		size := c.Int("size")
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		bench.Run(func() {
			for range numbers {
				_, err := bench.Collection.List(restclient.ListOptions{
					Filter: filter,
					Size:   size,
				})
				if err != nil {
					fmt.Printf("Could not run query: %v\n", err)
					return
				}
			}
		})
	},
}

var clear = cli.Command{
	Name:  "clear",
	Usage: "delete all of the entities",
	Action: func(c *cli.Context) {
		for {
			page, err := bench.Collection.List(restclient.ListOptions{Size: 100})
			if err != nil || len(page.Entities) == 0 {
				return
			}
			for _, e := range page.Entities {
				_ = bench.Collection.Remove(e.ID)
			}
		}
	},
}

func main() {
	app := cli.NewApp()
	app.Usage = "benchmark an everest REST server"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url",
			Value: "http://localhost:5980/",
			Usage: "base URL of the everest server",
		},
		cli.StringFlag{
			Name:  "collection",
			Usage: "name of the collection to work in",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many jobs in parallel",
		},
	}
	app.Commands = []cli.Command{
		addEntities,
		queryEntities,
		clear,
	}
	app.Before = func(c *cli.Context) (err error) {
		bench.Client, err = restclient.New(c.String("url"))
		if err != nil {
			return
		}

		bench.Collection, err = bench.Client.Collection(c.String("collection"))
		if err != nil {
			return
		}

		bench.Concurrency = c.Int("concurrency")

		return
	}
	app.RunAndExitOnError()
}
