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

package flight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FlightTestSuite struct {
	suite.Suite
	group *Group
}

func TestFlightSuite(t *testing.T) {
	suite.Run(t, new(FlightTestSuite))
}

func (suite *FlightTestSuite) SetupTest() {
	suite.group = &Group{}
}

func (suite *FlightTestSuite) TestDoSingleCaller() {
	v, err, shared := suite.group.Do(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		return "value", nil
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "value", v)
	assert.False(suite.T(), shared)
	assert.False(suite.T(), suite.group.InFlight("k"))
}

func (suite *FlightTestSuite) TestDoSuppressesConcurrentDuplicates() {
	const callers = 50
	var invocations int32
	release := make(chan struct{})

	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&invocations, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i], _ = suite.group.Do(context.Background(), "k", fn)
		}(i)
	}

	require.Eventually(suite.T(), func() bool { return suite.group.Waiters("k") == callers-1 },
		time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&invocations))
	for i := 0; i < callers; i++ {
		assert.NoError(suite.T(), errs[i])
		assert.Equal(suite.T(), 42, results[i])
	}
}

func (suite *FlightTestSuite) TestDoFailureIsSharedAndNotRemembered() {
	var invocations int32
	release := make(chan struct{})
	failure := errors.New("compute failed")

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i], _ = suite.group.Do(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
				atomic.AddInt32(&invocations, 1)
				<-release
				return nil, failure
			})
		}(i)
	}

	require.Eventually(suite.T(), func() bool { return suite.group.Waiters("k") == len(errs)-1 },
		time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&invocations))
	for _, err := range errs {
		assert.ErrorIs(suite.T(), err, failure)
	}

	v, err, _ := suite.group.Do(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&invocations, 1)
		return "recovered", nil
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "recovered", v)
	assert.Equal(suite.T(), int32(2), atomic.LoadInt32(&invocations))
}

func (suite *FlightTestSuite) TestDoRecoversPanic() {
	_, err, _ := suite.group.Do(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		panic("boom")
	})

	var panicErr *PanicError
	require.ErrorAs(suite.T(), err, &panicErr)
	assert.Equal(suite.T(), "boom", panicErr.Value)
	assert.NotEmpty(suite.T(), panicErr.Stack)
	assert.False(suite.T(), suite.group.InFlight("k"))
}

func (suite *FlightTestSuite) TestDoCallerTimeoutDoesNotCancelRound() {
	release := make(chan struct{})
	finished := make(chan struct{})
	fnCtxErr := make(chan error, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err, _ := suite.group.Do(ctx, "k", func(fctx context.Context) (interface{}, error) {
		<-release
		fnCtxErr <- fctx.Err()
		close(finished)
		return "late", nil
	})
	assert.ErrorIs(suite.T(), err, context.DeadlineExceeded)
	assert.True(suite.T(), suite.group.InFlight("k"))

	// A patient subscriber joining the same round still receives the result.
	var wg sync.WaitGroup
	var v interface{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err, _ = suite.group.Do(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
			return "duplicate", nil
		})
	}()

	require.Eventually(suite.T(), func() bool { return suite.group.Waiters("k") == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	<-finished

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "late", v)
	assert.NoError(suite.T(), <-fnCtxErr)
}

func (suite *FlightTestSuite) TestDoUnrelatedKeysDoNotBlock() {
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _, _ = suite.group.Do(context.Background(), "slow", func(ctx context.Context) (interface{}, error) {
			<-release
			return nil, nil
		})
	}()
	require.Eventually(suite.T(), func() bool { return suite.group.InFlight("slow") }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err, _ := suite.group.Do(ctx, "fast", func(ctx context.Context) (interface{}, error) {
		return "fast", nil
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "fast", v)
}
