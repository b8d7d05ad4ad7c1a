package store

import (
	"strconv"

	"github.com/ipfs/go-datastore"

	"github.com/celestiaorg/celestia-light/header"
)

var (
	storePrefix = datastore.NewKey("headers")
	headKey     = datastore.NewKey("head")
	tailKey     = datastore.NewKey("tail")
)

func headerKey(h *header.ExtendedHeader) datastore.Key {
	return hashKey(h.Hash())
}

func hashKey(hash header.Hash) datastore.Key {
	return datastore.NewKey(hash.String())
}

func heightKey(height uint64) datastore.Key {
	return datastore.NewKey(strconv.FormatUint(height, 10))
}
