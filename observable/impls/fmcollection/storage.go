package fmcollection

import (
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libobservable/diff"
	"github.com/sgostarter/libobservable/observable"
)

// New builds a Collection mirrored to a file: the initial contents load from
// the file and every published difference rewrites the mirror with the
// post-mutation snapshot. Only the backing sequence is persisted, never the
// differences themselves. The returned detach function stops mirroring.
func New[E any](fileName string, storage stg.FileStorage, logger l.Wrapper) (coll *observable.Collection[E], detach func(), err error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "fmCollection"))

	if fileName == "" {
		err = commerr.ErrInvalidArgument

		return
	}

	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	mirror := mwf.NewMemWithFile[[]E, mwf.Serial, mwf.Lock](
		nil, &mwf.JSONSerial{}, &sync.RWMutex{}, fileName, storage)

	var initial []E

	mirror.Read(func(v []E) {
		initial = v
	})

	coll = observable.NewCollection(initial, logger)

	token := coll.Subscribe(func(_ diff.Difference[E]) {
		snapshot := coll.Snapshot()

		e := mirror.Change(func(_ []E) (newV []E, err error) {
			newV = snapshot

			return
		})
		if e != nil {
			logger.WithFields(l.ErrorField(e)).Error("save mirror failed")
		}
	})

	detach = func() {
		coll.Unsubscribe(token)
	}

	return
}
