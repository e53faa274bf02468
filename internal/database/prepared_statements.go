package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes chaudes
	stmtGetUserByEmail   *gocql.Query
	stmtGetUserByID      *gocql.Query
	stmtInsertUser       *gocql.Query
	stmtInsertUserByMail *gocql.Query
	stmtGetProductByID   *gocql.Query
	stmtGetApprovalByID  *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements prépare les requêtes fréquentes (login, fiche produit,
// vérification questionnaire au checkout)
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		usersSession, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements (users): %v", err)
			return
		}

		stmtGetUserByEmail = usersSession.Query("SELECT user_id FROM users_by_email WHERE email = ?")
		stmtGetUserByID = usersSession.Query(`SELECT email, password, name, role FROM users WHERE user_id = ?`)
		stmtInsertUser = usersSession.Query(`INSERT INTO users (user_id, email, password, name, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		stmtInsertUserByMail = usersSession.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)")
		stmtGetApprovalByID = usersSession.Query(`SELECT user_id, product_id, status FROM questionnaire_approvals WHERE approval_id = ?`)

		productsSession, err := GetProductsSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements (products): %v", err)
			return
		}

		stmtGetProductByID = productsSession.Query(`SELECT product_id, name, description, active_substance, price, category_id,
			image_urls, tags, requires_prescription, dosages, tablet_counts, is_active, created_at, updated_at
			FROM products WHERE product_id = ?`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtGetUserByEmail
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtGetUserByID
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return stmtInsertUserByMail
}

func GetPreparedGetProductByID() *gocql.Query {
	return stmtGetProductByID
}

func GetPreparedGetApprovalByID() *gocql.Query {
	return stmtGetApprovalByID
}
