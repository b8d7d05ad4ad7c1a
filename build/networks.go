// Package build carries the registry of long-running networks the node can
// join, together with their bootstrap peers.
package build

import (
	"errors"
	"time"
)

// NOTE: Every time we add a new long-running network, it has to be added here.
const (
	// DefaultNetwork is the default network of the current build.
	DefaultNetwork = Mocha
	// Arabica testnet.
	Arabica Network = "arabica-11"
	// Mocha testnet.
	Mocha Network = "mocha-4"
	// Private can be used to set up any private network, including local
	// testing setups.
	Private Network = "private"

	// BlockTime is the expected block production interval of the networks
	// above.
	BlockTime = time.Second * 15
)

// Network is a type definition for a DA network run by the node.
type Network string

// ErrInvalidNetwork is thrown when an unknown network is used.
var ErrInvalidNetwork = errors.New("build: invalid network")

// Validate resolves aliases and errors on unknown networks.
func (n Network) Validate() (Network, error) {
	// return the actual network if an alias was provided
	if net, ok := networkAliases[string(n)]; ok {
		return net, nil
	}
	if _, ok := networksList[n]; !ok {
		return "", ErrInvalidNetwork
	}
	return n, nil
}

// String returns string representation of the Network.
func (n Network) String() string {
	return string(n)
}

// networksList is a strict list of all known long-standing networks.
var networksList = map[Network]struct{}{
	Arabica: {},
	Mocha:   {},
	Private: {},
}

// networkAliases maps the short name of each network to its Network.
var networkAliases = map[string]Network{
	"arabica": Arabica,
	"mocha":   Mocha,
	"private": Private,
}
