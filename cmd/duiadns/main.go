package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/joho/godotenv"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"

	"duiadns/internal/account"
	"duiadns/internal/backup"
	"duiadns/internal/config"
	"duiadns/internal/discovery"
	"duiadns/internal/duia"
	"duiadns/internal/health"
	"duiadns/internal/healthchecksio"
	"duiadns/internal/models"
	"duiadns/internal/netscan"
	persistence "duiadns/internal/persistence/json"
	"duiadns/internal/resolver"
	"duiadns/internal/shoutrrr"
	"duiadns/internal/update"
	"duiadns/pkg/publicip"
	iphttp "duiadns/pkg/publicip/http"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	err := _main(ctx, os.Args, logger, buildInfo)
	stop()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var ErrUsage = errors.New("usage")

func _main(ctx context.Context, args []string,
	logger log.LoggerInterface, buildInfo models.BuildInformation) (err error) {
	err = godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env file: " + err.Error())
	}

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		case "healthcheck":
			if len(args) != 3 { //nolint:gomnd
				return fmt.Errorf("%w: %s healthcheck <account file path>",
					ErrUsage, args[0])
			}
			return healthcheck(ctx, reader, args[2])
		}
	}

	if len(args) != 2 { //nolint:gomnd
		return fmt.Errorf("%w: %s <account file path>", ErrUsage, args[0])
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	settings, err := readAccount(args[1], logger)
	if err != nil {
		return err
	}

	shoutrrrClient, err := shoutrrr.New(shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	})
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	db, err := persistence.NewDatabase(settings.CachePath)
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("reading cache file: %w", err)
	}

	client := &http.Client{Timeout: settings.Timeout}
	defer client.CloseIdleConnections()

	hioClient := healthchecksio.New(client, config.Health.HealthchecksioBaseURL,
		*config.Health.HealthchecksioUUID)
	pingHealthchecksio(hioClient, logger, healthchecksio.Start)

	err = health.CheckHTTP(ctx, client)
	if err != nil {
		logger.Warn(err.Error())
	}

	httpOptions := config.PubIP.ToHTTPOptions()
	httpOptions = append(httpOptions,
		iphttp.SetUserAgent(config.Client.UserAgent),
		iphttp.SetTimeout(settings.Timeout))
	ipGetter, err := publicip.NewFetcher(
		publicip.DNSSettings{
			Enabled: *config.PubIP.DNSEnabled,
			Options: config.PubIP.ToDNSOptions(),
		},
		publicip.HTTPSettings{
			Enabled: *config.PubIP.HTTPEnabled,
			Client:  client,
			Options: httpOptions,
		})
	if err != nil {
		return fmt.Errorf("creating public IP fetcher: %w", err)
	}

	discoverer := discovery.New(ipGetter, netscan.New(),
		logger.New(log.SetComponent("discovery")))
	duiaClient := duia.New(client, settings.Password, config.Client.UserAgent)

	updater := update.NewUpdater(settings, db, discoverer, duiaClient,
		shoutrrrClient, logger.New(log.SetComponent("updater")))
	err = updater.Run(ctx)
	if err != nil {
		pingHealthchecksio(hioClient, logger, healthchecksio.Exit1)
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("running the updater: %w", err)
	}

	backupService := backup.New(*config.Backup.Directory,
		logger.New(log.SetComponent("backup")))
	err = backupService.Run(settings.CachePath)
	if err != nil {
		logger.Warn("backing up cache file: " + err.Error())
	}

	pingHealthchecksio(hioClient, logger, healthchecksio.Exit0)
	return nil
}

// healthcheck verifies the DNS records for the hostnames of the
// account file match the last addresses published, using the
// resolver configured in the environment.
func healthcheck(ctx context.Context, reader *reader.Reader,
	accountFilepath string) (err error) {
	var resolverConfig config.Resolver
	err = resolverConfig.Read(reader)
	if err != nil {
		return fmt.Errorf("reading resolver settings: %w", err)
	}
	resolverConfig.SetDefaults()
	err = resolverConfig.Validate()
	if err != nil {
		return fmt.Errorf("resolver settings validation: %w", err)
	}

	settings, err := account.Read(accountFilepath)
	if err != nil {
		return err
	}
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return fmt.Errorf("account settings validation: %w", err)
	}

	db, err := persistence.NewDatabase(settings.CachePath)
	if err != nil {
		return fmt.Errorf("reading cache file: %w", err)
	}

	netResolver, err := resolver.New(resolverConfig.ToSettings())
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	return health.CheckDNS(ctx, netResolver, settings.Hostnames, db)
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "duiadns",
		Repository: "duiadns",
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}

func readAccount(filepath string, logger log.LoggerInterface) (
	settings account.Settings, err error) {
	settings, err = account.Read(filepath)
	if err != nil {
		return settings, err
	}
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return settings, fmt.Errorf("account settings validation: %w", err)
	}

	logger.Info(settings.String())
	return settings, nil
}

func pingHealthchecksio(hioClient *healthchecksio.Client,
	logger log.LoggerInterface, state healthchecksio.State) {
	const timeout = 3 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := hioClient.Ping(ctx, state)
	if err != nil {
		logger.Error("pinging healthchecks.io: " + err.Error())
	}
}
