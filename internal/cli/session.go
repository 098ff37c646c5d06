package cli

import (
	"github.com/keyfold/keyfold/internal/chain"
	"github.com/keyfold/keyfold/internal/session"
	"github.com/keyfold/keyfold/internal/store"
)

// hydrateSession opens the snapshot store and hydrates a fresh session
// from it. The returned closer must be called once the command is done
// with the store.
func hydrateSession() (*session.Session, func(), error) {
	st, err := store.Open(cfg.StoreDir(), store.BadgerLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	s := session.New(st)
	if err := s.Hydrate(); err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return s, func() { _ = st.Close() }, nil
}

// openSession is hydrateSession plus the chain selection still pending in
// the config. A "chain use" before the first generate exists only in the
// config file, so it is re-applied whenever the snapshot supplied no chain.
func openSession() (*session.Session, func(), error) {
	s, closeStore, err := hydrateSession()
	if err != nil {
		return nil, nil, err
	}

	if s.Chain() == "" && cfg.Chain != "" {
		if pt, ok := chain.Parse(cfg.Chain); ok {
			if err := s.SelectChain(pt); err != nil {
				closeStore()
				return nil, nil, err
			}
		}
	}

	return s, closeStore, nil
}
