/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package flight provides per-key duplicate call suppression for cache population.
package flight

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// PanicError is returned to every caller of a round whose function panicked.
type PanicError struct {
	Value interface{}
	Stack []byte
}

// Error returns the panic value and the stack of the panicking goroutine.
func (p *PanicError) Error() string {
	return fmt.Sprintf("flight function panicked: %v\n\n%s", p.Value, p.Stack)
}

// call is the single-owner handle of one in-flight round for a key.
type call struct {
	done chan struct{}
	val  interface{}
	err  error
	dups int
	mu   sync.Mutex
}

// Group suppresses duplicate concurrent calls per key.
// Unrelated keys never contend on a shared lock.
type Group struct {
	calls sync.Map // map[string]*call
}

// Do runs fn once for the key among all concurrent callers and delivers its result to every one of them.
// The function runs detached from the callers' cancellation so a caller that stops waiting does not abort
// the round for the others. shared reports whether the result was delivered to more than one caller.
func (g *Group) Do(ctx context.Context, key string,
	fn func(ctx context.Context) (interface{}, error)) (v interface{}, err error, shared bool) {
	c := &call{done: make(chan struct{})}
	actual, loaded := g.calls.LoadOrStore(key, c)
	if loaded {
		c = actual.(*call)
		c.mu.Lock()
		c.dups++
		c.mu.Unlock()
	} else {
		go g.run(context.WithoutCancel(ctx), key, c, fn)
	}

	select {
	case <-c.done:
		c.mu.Lock()
		shared = c.dups > 0
		c.mu.Unlock()
		return c.val, c.err, shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}

// InFlight reports whether a round is currently running for the key.
func (g *Group) InFlight(key string) bool {
	_, ok := g.calls.Load(key)
	return ok
}

// Waiters returns the number of callers that joined the round in flight for the key, the owner excluded.
func (g *Group) Waiters(key string) int {
	v, ok := g.calls.Load(key)
	if !ok {
		return 0
	}
	c := v.(*call)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dups
}

// run executes the round and publishes its outcome. The key is released before waiters are woken,
// so a caller arriving after a failure starts a fresh round.
func (g *Group) run(ctx context.Context, key string, c *call,
	fn func(ctx context.Context) (interface{}, error)) {
	defer func() {
		if r := recover(); r != nil {
			c.val = nil
			c.err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		g.calls.CompareAndDelete(key, c)
		close(c.done)
	}()

	c.val, c.err = fn(ctx)
}
