package recommendation

import "sync"

// keyMutex serializa las operaciones sobre una misma recomendación dentro
// del proceso. El lock de fila en la DB protege entre procesos; este mutex
// evita que dos goroutines del mismo proceso compitan por la transición.
// Las entradas se cuentan por referencia y se eliminan del mapa cuando la
// última goroutine libera la clave, así el mapa no crece con el tiempo.
type keyMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyMutex() *keyMutex {
	return &keyMutex{locks: make(map[string]*keyLock)}
}

// Lock bloquea la clave y devuelve la función para liberarla.
func (k *keyMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
