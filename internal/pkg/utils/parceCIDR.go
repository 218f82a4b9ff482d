package utils

import "net"

// GetCIDR парсит строку CIDR для получения подсети
func GetCIDR(trustedString string) (*net.IPNet, error) {
	if trustedString == "" {
		return nil, nil
	}
	//нам интересна подсеть
	_, ipNet, err := net.ParseCIDR(trustedString)
	if err != nil {
		return nil, err
	}
	return ipNet, nil
}

// InSubnet проверяет, что адрес из заголовка X-Real-IP входит в доверенную подсеть
func InSubnet(subnet *net.IPNet, realIP string) bool {
	if subnet == nil || realIP == "" {
		return false
	}
	ip := net.ParseIP(realIP)
	if ip == nil {
		return false
	}
	return subnet.Contains(ip)
}
