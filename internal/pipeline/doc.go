// Package pipeline runs per-record work on a bounded pool of goroutines and
// hands results back in input order.
//
// Records are independent, so any number of workers may process them; the
// collector holds early results until every earlier index has been visited.
package pipeline
