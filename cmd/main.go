package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/cmd/importer"
	"tradejournal/src/database"
	"tradejournal/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Tradejournal CMD"
	app.Usage = "The trade journal command line interface"

	app.Commands = []cli.Command{
		serverCMD,
		importerCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serverCMD = cli.Command{
		Name:        "server",
		Usage:       "run the journal API server",
		Action:      serverAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the journal API server`,
	}
	importerCMD = cli.Command{
		Name:      "importer",
		Usage:     "import a legacy JSON trade export",
		Action:    importerAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "file",
				Usage: "path to the legacy JSON export",
				Value: "data.json",
			},
		},
		Description: `Import a legacy JSON trade export into the database`,
	}
)

func serverAction(_ *cli.Context) error {

	logrus.Info("Starting journal API server CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(server.GetConfig().Port)

	return nil
}

func importerAction(c *cli.Context) error {

	logrus.Info("Starting importer CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	_importer := &importer.Importer{
		Log:  logrus.WithField("cmd", "importer"),
		DB:   database.MainDB,
		Path: c.String("file"),
	}

	err := _importer.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting importer CMD")
		return err
	}

	return nil
}
