package handlers

import (
	"fmt"
	"os"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const subscriptionsVersion = 1

// Subscription is one group that receives stock alerts.
type Subscription struct {
	GroupName string `json:"group_name"`
	UpdatedAt string `json:"updated_at"`
}

type subscriptionFile struct {
	Version int                     `json:"version"`
	Groups  map[string]Subscription `json:"groups"`
}

// SubscriptionStore keeps alert subscriptions in a JSON file keyed by group id.
type SubscriptionStore struct {
	path string
	now  func() time.Time

	mu     sync.Mutex
	groups map[string]Subscription
}

// LoadSubscriptions reads path; a missing file is an empty store.
func LoadSubscriptions(path string) (*SubscriptionStore, error) {
	s := &SubscriptionStore{
		path:   path,
		now:    time.Now,
		groups: make(map[string]Subscription),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read subscriptions: %w", err)
	}
	var file subscriptionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse subscriptions: %w", err)
	}
	for id, sub := range file.Groups {
		s.groups[id] = sub
	}
	return s, nil
}

// Set subscribes or unsubscribes a group and saves the file.
func (s *SubscriptionStore) Set(groupID, groupName string, subscribe bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subscribe {
		s.groups[groupID] = Subscription{GroupName: groupName, UpdatedAt: s.now().Format(time.RFC3339)}
	} else {
		delete(s.groups, groupID)
	}
	return s.saveLocked()
}

func (s *SubscriptionStore) saveLocked() error {
	data, err := json.MarshalIndent(subscriptionFile{Version: subscriptionsVersion, Groups: s.groups}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Groups returns group id to group name for every subscriber.
func (s *SubscriptionStore) Groups() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.groups))
	for id, sub := range s.groups {
		out[id] = sub.GroupName
	}
	return out
}
