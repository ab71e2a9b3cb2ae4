// Package update orchestrates one run of the updater: discover the
// public addresses, decide per hostname whether an update is needed,
// submit the needed updates to the provider and persist the cache.
package update

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"duiadns/internal/account"
)

type Updater struct {
	settings   account.Settings
	db         Database
	discoverer Discoverer
	client     UpdateClient
	notifier   Notifier
	logger     Logger
}

func NewUpdater(settings account.Settings, db Database,
	discoverer Discoverer, client UpdateClient,
	notifier Notifier, logger Logger) *Updater {
	return &Updater{
		settings:   settings,
		db:         db,
		discoverer: discoverer,
		client:     client,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run processes all the configured hostnames in configuration order
// and persists the cache once at the end. Discovery and provider
// failures are soft: they are logged, skip the affected hostname or
// family for this run and will naturally be retried on the next
// scheduled invocation. Only a cache persist failure makes the run
// fail.
func (u *Updater) Run(ctx context.Context) (err error) {
	// One discovery per enabled family, shared by all hostnames
	// since they resolve from the same machine.
	var publicIPv4, publicIPv6 netip.Addr
	if *u.settings.IPv4 {
		publicIPv4, err = u.discoverer.IPv4(ctx)
		if err != nil {
			u.logger.Warn("finding public IPv4 address: " + err.Error())
		}
	}
	if *u.settings.IPv6 {
		publicIPv6, err = u.discoverer.IPv6(ctx)
		if err != nil {
			u.logger.Warn("finding public IPv6 address: " + err.Error())
		}
	}

	var updated, unchanged, failed int
	for _, hostname := range u.settings.Hostnames {
		cachedIPv4, cachedIPv6 := u.db.GetHostIPs(hostname)
		newIPv4 := ipToPublish(publicIPv4, cachedIPv4)
		newIPv6 := ipToPublish(publicIPv6, cachedIPv6)

		if !newIPv4.IsValid() && !newIPv6.IsValid() {
			u.logger.Info("update unnecessary for " + hostname)
			unchanged++
			continue
		}

		err = u.client.Update(ctx, hostname, newIPv4, newIPv6)
		if err != nil {
			failed++
			message := "update failed for " + hostname +
				addressesSuffix(newIPv4, newIPv6) + ": " + err.Error()
			u.logger.Error(message)
			u.notifier.Notify(message)
			continue
		}

		u.db.StoreHostIPs(hostname, newIPv4, newIPv6)
		updated++
		message := "successful update for " + hostname +
			addressesSuffix(newIPv4, newIPv6)
		u.logger.Info(message)
		u.notifier.Notify(message)
	}

	u.logger.Info(fmt.Sprintf("run summary: %d updated, %d unchanged, %d failed",
		updated, unchanged, failed))

	err = u.db.Persist()
	if err != nil {
		return fmt.Errorf("persisting cache: %w", err)
	}

	return nil
}

func addressesSuffix(ipv4, ipv6 netip.Addr) (suffix string) {
	var addresses []string
	if ipv4.IsValid() {
		addresses = append(addresses, ipv4.String())
	}
	if ipv6.IsValid() {
		addresses = append(addresses, ipv6.String())
	}
	return " to " + strings.Join(addresses, " ")
}
