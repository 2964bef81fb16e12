package recommendation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializaPorClave(t *testing.T) {
	km := newKeyMutex()

	var mu sync.Mutex
	var enSeccion, maxEnSeccion int

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("rec-1")
			defer unlock()

			mu.Lock()
			enSeccion++
			if enSeccion > maxEnSeccion {
				maxEnSeccion = enSeccion
			}
			mu.Unlock()

			mu.Lock()
			enSeccion--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxEnSeccion, "dos goroutines no deben entrar a la vez con la misma clave")
}

func TestKeyMutex_ClavesDistintasNoSeBloquean(t *testing.T) {
	km := newKeyMutex()

	unlockA := km.Lock("rec-a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("rec-b")
		unlockB()
		close(done)
	}()

	<-done // rec-b entra aunque rec-a siga tomada
	unlockA()
}

func TestKeyMutex_LiberaLaEntradaAlSoltarElUltimo(t *testing.T) {
	km := newKeyMutex()

	unlock1 := km.Lock("rec-1")

	released := make(chan struct{})
	go func() {
		unlock2 := km.Lock("rec-1") // espera a unlock1
		unlock2()
		close(released)
	}()

	unlock1()
	<-released

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.locks, "sin goroutines esperando, el mapa no debe retener entradas")
}
