package utils

import "log"

// RunBestEffort lance fn dans une goroutine et garantit que ni une erreur ni
// un panic ne remontent à l'appelant. Pour les canaux secondaires : e-mails,
// indexation, compteurs de popularité.
func RunBestEffort(name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ Panic ignoré (%s): %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			log.Printf("⚠️ Échec ignoré (%s): %v", name, err)
		}
	}()
}
