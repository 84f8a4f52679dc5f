// nolint:errcheck
package ftrie

import (
	"math/rand"
	"strconv"
	"sync"
	"testing"
)

func TestMapLockerParallel(t *testing.T) {
	// Use MapLocker to simulate atomic balance transfer between accounts.
	// Single transfer consists of getting balance of two accounts, then
	// subtracting some amount from one and adding it to another. The
	// operation runs concurrently on multiple goroutines; if tx isolation
	// is not implemented correctly the total balance drifts.
	locker := NewMapLocker[int](NewMap[int]())

	numAccounts := 10
	numTransactions := 10000
	initialBalance := 1000

	tx := locker.Lock()
	for i := 0; i < numAccounts; i++ {
		tx.Set(strconv.Itoa(i), initialBalance)
	}
	tx.Unlock()
	totalBalance := numAccounts * initialBalance

	wg := &sync.WaitGroup{}
	for i := 0; i < numTransactions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accA := rand.Intn(numAccounts)
			var accB int
			for accB = rand.Intn(numAccounts); accB == accA; accB = rand.Intn(numAccounts) {
			}
			keyA, keyB := strconv.Itoa(accA), strconv.Itoa(accB)

			tx := locker.Lock()
			defer tx.Unlock()

			balA, _ := tx.Get(keyA)
			balB, _ := tx.Get(keyB)

			if balA < balB {
				size := rand.Intn(balB + 1)
				balA += size
				balB -= size
			} else {
				size := rand.Intn(balA + 1)
				balB += size
				balA -= size
			}
			tx.Set(keyA, balA)
			tx.Set(keyB, balB)
		}()
	}
	wg.Wait()

	sum := 0
	for i := 0; i < numAccounts; i++ {
		v, err := locker.m.Get(strconv.Itoa(i))
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		sum += v
	}
	if sum != totalBalance {
		t.Fatalf("total balance drifted: got %d, want %d", sum, totalBalance)
	}
}

func TestMapLockerReadOnlyPanics(t *testing.T) {
	locker := NewMapLocker[string](NewMap[string]())
	tx := locker.RLock()
	defer tx.Unlock()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on Set within RLock")
		}
	}()
	tx.Set("a", "b")
}

func TestMapLockerUnlockTwicePanics(t *testing.T) {
	locker := NewMapLocker[string](NewMap[string]())
	tx := locker.Lock()
	tx.Unlock()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on double Unlock")
		}
	}()
	tx.Unlock()
}
