package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// imageReference is an azurerm source_image_reference for a catalog OS image.
type imageReference struct {
	Publisher string
	Offer     string
	SKU       string
	Version   string
}

// vmImages maps the OS images the generator knows how to render. Anything
// outside the map falls back to Ubuntu 22.04.
var vmImages = map[string]imageReference{
	"Ubuntu2204":        {"Canonical", "0001-com-ubuntu-server-jammy", "22_04-lts-gen2", "latest"},
	"Ubuntu2004":        {"Canonical", "0001-com-ubuntu-server-focal", "20_04-lts-gen2", "latest"},
	"WindowsServer2022": {"MicrosoftWindowsServer", "WindowsServer", "2022-datacenter-g2", "latest"},
	"RHEL8":             {"RedHat", "RHEL", "8-lvm-gen2", "latest"},
}

const vmNetworkTemplate = `
# Virtual Network for VM
resource "azurerm_virtual_network" "vnet_%[1]s" {
  name                = "%[1]s-vnet"
  address_space       = ["10.0.0.0/16"]
  location            = %[2]s
  resource_group_name = %[3]s
}

# Subnet
resource "azurerm_subnet" "subnet_%[1]s" {
  name                 = "default"
  resource_group_name  = %[3]s
  virtual_network_name = azurerm_virtual_network.vnet_%[1]s.name
  address_prefixes     = ["10.0.1.0/24"]
}
`

const vmPublicIPTemplate = `
# Public IP
resource "azurerm_public_ip" "pip_%[1]s" {
  name                = "%[1]s-pip"
  location            = %[2]s
  resource_group_name = %[3]s
  allocation_method   = "Static"
  sku                 = "Standard"
}
`

const vmNSGTemplate = `
# Network Security Group
resource "azurerm_network_security_group" "nsg_%[1]s" {
  name                = "%[1]s-nsg"
  location            = %[2]s
  resource_group_name = %[3]s

  security_rule {
    name                       = "SSH"
    priority                   = 1001
    direction                  = "Inbound"
    access                     = "Allow"
    protocol                   = "Tcp"
    source_port_range          = "*"
    destination_port_range     = "%[4]s"
    source_address_prefix      = "*"
    destination_address_prefix = "*"
  }
}
`

const vmNICTemplate = `
# Network Interface
resource "azurerm_network_interface" "nic_%[1]s" {
  name                = "%[1]s-nic"
  location            = %[2]s
  resource_group_name = %[3]s

  ip_configuration {
    name                          = "internal"
    subnet_id                     = azurerm_subnet.subnet_%[1]s.id
    private_ip_address_allocation = "Dynamic"%[4]s
  }
}

# NIC-NSG Association
resource "azurerm_network_interface_security_group_association" "nsg_assoc_%[1]s" {
  network_interface_id      = azurerm_network_interface.nic_%[1]s.id
  network_security_group_id = azurerm_network_security_group.nsg_%[1]s.id
}
`

const linuxVMTemplate = `
# SSH Key
resource "tls_private_key" "ssh_%[1]s" {
  algorithm = "RSA"
  rsa_bits  = 4096
}

# Virtual Machine
resource "azurerm_linux_virtual_machine" "vm_%[1]s" {
  name                = "%[1]s"
  resource_group_name = %[2]s
  location            = %[3]s
  size                = "%[4]s"
  admin_username      = "%[5]s"

  network_interface_ids = [
    azurerm_network_interface.nic_%[1]s.id,
  ]

  admin_ssh_key {
    username   = "%[5]s"
    public_key = tls_private_key.ssh_%[1]s.public_key_openssh
  }

  os_disk {
    caching              = "ReadWrite"
    storage_account_type = "%[6]s"
    name                 = "%[1]s-osdisk"
  }

  source_image_reference {
    publisher = "%[7]s"
    offer     = "%[8]s"
    sku       = "%[9]s"
    version   = "%[10]s"
  }

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

# Output the private key (save securely!)
output "private_key_%[1]s" {
  value     = tls_private_key.ssh_%[1]s.private_key_pem
  sensitive = true
}
`

const windowsVMTemplate = `
# Windows Virtual Machine
resource "azurerm_windows_virtual_machine" "vm_%[1]s" {
  name                = "%[1]s"
  resource_group_name = %[2]s
  location            = %[3]s
  size                = "%[4]s"
  admin_username      = "%[5]s"
  admin_password      = "ChangeMe123!" # Change this!

  network_interface_ids = [
    azurerm_network_interface.nic_%[1]s.id,
  ]

  os_disk {
    caching              = "ReadWrite"
    storage_account_type = "%[6]s"
    name                 = "%[1]s-osdisk"
  }

  source_image_reference {
    publisher = "%[7]s"
    offer     = "%[8]s"
    sku       = "%[9]s"
    version   = "%[10]s"
  }

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}
`

const vmPublicIPOutput = `
output "public_ip_%[1]s" {
  value = azurerm_public_ip.pip_%[1]s.ip_address
}
`

// renderVM writes the VM plus its supporting network: vnet, subnet, optional
// public IP, NSG with a single inbound rule (SSH or RDP port by OS), NIC and
// the NSG association. Linux machines get a generated RSA key and an
// azurerm_linux_virtual_machine; Windows machines get a placeholder password
// and an azurerm_windows_virtual_machine.
func renderVM(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "myvm")
	size := cfg.String("size", "Standard_B2s")
	osImage := cfg.String("os_image", "Ubuntu2204")
	admin := cfg.String("admin_username", "azureuser")
	diskType := cfg.String("os_disk_type", "Standard_LRS")
	publicIP := cfg.Bool("create_public_ip", true)

	image, ok := vmImages[osImage]
	if !ok {
		image = vmImages["Ubuntu2204"]
	}
	isLinux := !strings.Contains(osImage, "Windows")

	fmt.Fprintf(sb, vmNetworkTemplate, name, regionRef, rgRef)

	if publicIP {
		fmt.Fprintf(sb, vmPublicIPTemplate, name, regionRef, rgRef)
	}

	port := "22"
	if !isLinux {
		port = "3389"
	}
	fmt.Fprintf(sb, vmNSGTemplate, name, regionRef, rgRef, port)

	var pipAttachment string
	if publicIP {
		pipAttachment = fmt.Sprintf("\n    public_ip_address_id = azurerm_public_ip.pip_%s.id", name)
	}
	fmt.Fprintf(sb, vmNICTemplate, name, regionRef, rgRef, pipAttachment)

	tmpl := windowsVMTemplate
	if isLinux {
		tmpl = linuxVMTemplate
	}
	fmt.Fprintf(sb, tmpl, name, rgRef, regionRef, size, admin, diskType,
		image.Publisher, image.Offer, image.SKU, image.Version)

	if publicIP {
		fmt.Fprintf(sb, vmPublicIPOutput, name)
	}
}
