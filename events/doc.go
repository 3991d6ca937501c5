// Package events provides declarative model lifecycle listeners: register
// them at model declaration sites with On, and the repository layer
// dispatches them around inserts, updates, deletes, and selects.
package events
