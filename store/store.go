// Package store persists events, sessions, proposals and baselines in a
// BoltDB file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/session"
	"github.com/ayoisaiah/cogload/vitals"
)

const (
	eventBucket    = "events"
	sessionBucket  = "sessions"
	activeBucket   = "active"
	proposalBucket = "proposals"
	baselineBucket = "baselines"
)

var buckets = []string{
	eventBucket,
	sessionBucket,
	activeBucket,
	proposalBucket,
	baselineBucket,
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{db}, nil
}

func put(tx *bolt.Tx, bucket, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(bucket)).Put([]byte(key), b)
}

// get decodes the value at key into v and reports whether it was present.
func get(tx *bolt.Tx, bucket, key string, v any) (bool, error) {
	b := tx.Bucket([]byte(bucket)).Get([]byte(key))
	if b == nil {
		return false, nil
	}

	return true, json.Unmarshal(b, v)
}

func all[T any](tx *bolt.Tx, bucket string) ([]T, error) {
	var out []T

	err := tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return err
		}

		out = append(out, item)

		return nil
	})

	return out, err
}

func loadEvents(tx *bolt.Tx) ([]models.Event, error) {
	events, err := all[models.Event](tx, eventBucket)
	if err != nil {
		return nil, err
	}

	ledger.Sort(events)

	return events, nil
}

// writeEvents makes the events bucket hold exactly events.
func writeEvents(tx *bolt.Tx, events []models.Event) error {
	keep := make(map[string]bool, len(events))

	for i := range events {
		keep[events[i].ID] = true

		if err := put(tx, eventBucket, events[i].ID, &events[i]); err != nil {
			return err
		}
	}

	b := tx.Bucket([]byte(eventBucket))

	var stale [][]byte

	err := b.ForEach(func(k, _ []byte) error {
		if !keep[string(k)] {
			stale = append(stale, bytes.Clone(k))
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) Events() ([]models.Event, error) {
	var events []models.Event

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		events, err = loadEvents(tx)

		return err
	})

	return events, err
}

func (c *Client) GetEvent(id string) (models.Event, error) {
	var e models.Event

	err := c.View(func(tx *bolt.Tx) error {
		ok, err := get(tx, eventBucket, id, &e)
		if err != nil {
			return err
		}

		if !ok {
			return ledger.ErrEventNotFound.Fmt(id)
		}

		return nil
	})

	return e, err
}

func (c *Client) UpdateEvents(
	fn func(events []models.Event) ([]models.Event, error),
) error {
	return c.Update(func(tx *bolt.Tx) error {
		events, err := loadEvents(tx)
		if err != nil {
			return err
		}

		events, err = fn(events)
		if err != nil {
			return err
		}

		return writeEvents(tx, events)
	})
}

func (c *Client) SaveProposal(p *models.Proposal) error {
	return c.Update(func(tx *bolt.Tx) error {
		return put(tx, proposalBucket, p.ID, p)
	})
}

func getProposal(tx *bolt.Tx, id string) (*models.Proposal, error) {
	var p models.Proposal

	ok, err := get(tx, proposalBucket, id, &p)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errProposalNotFound.Fmt(id)
	}

	return &p, nil
}

func (c *Client) GetProposal(id string) (*models.Proposal, error) {
	var p *models.Proposal

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		p, err = getProposal(tx, id)

		return err
	})

	return p, err
}

func (c *Client) ApplyProposal(
	id string,
	fn func(p *models.Proposal, events []models.Event) ([]models.Event, error),
) (*models.Proposal, error) {
	var p *models.Proposal

	err := c.Update(func(tx *bolt.Tx) error {
		var err error

		p, err = getProposal(tx, id)
		if err != nil {
			return err
		}

		events, err := loadEvents(tx)
		if err != nil {
			return err
		}

		events, err = fn(p, events)
		if err != nil {
			return err
		}

		if err := writeEvents(tx, events); err != nil {
			return err
		}

		return put(tx, proposalBucket, p.ID, p)
	})

	return p, err
}

func (c *Client) ActiveSession(userID string) (*models.Session, error) {
	var (
		s     models.Session
		found bool
	)

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		found, err = get(tx, activeBucket, userID, &s)

		return err
	})
	if err != nil || !found {
		return nil, err
	}

	return &s, nil
}

func (c *Client) SaveActiveSession(s *models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		return put(tx, activeBucket, s.UserID, s)
	})
}

func (c *Client) CompleteSession(s *models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		if err := put(tx, sessionBucket, s.ID, s); err != nil {
			return err
		}

		return tx.Bucket([]byte(activeBucket)).Delete([]byte(s.UserID))
	})
}

func (c *Client) Sessions(from, to time.Time) ([]models.Session, error) {
	var out []models.Session

	err := c.View(func(tx *bolt.Tx) error {
		sessions, err := all[models.Session](tx, sessionBucket)
		if err != nil {
			return err
		}

		for i := range sessions {
			st := sessions[i].StartTime
			if !st.Before(from) && st.Before(to) {
				out = append(out, sessions[i])
			}
		}

		return nil
	})

	return out, err
}

func (c *Client) Profile(userID string) (*vitals.Profile, error) {
	p := vitals.NewProfile(userID)

	err := c.View(func(tx *bolt.Tx) error {
		_, err := get(tx, baselineBucket, userID, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) SaveProfile(p *vitals.Profile) error {
	return c.Update(func(tx *bolt.Tx) error {
		return put(tx, baselineBucket, p.UserID, p)
	})
}

func (c *Client) DeleteProfile(userID string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(baselineBucket)).Delete([]byte(userID))
	})
}

var (
	_ DB            = (*Client)(nil)
	_ session.Store = (*Client)(nil)
)
